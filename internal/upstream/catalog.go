package upstream

import (
	"context"
	"net/http"
	"net/url"

	"course_admin_gateway/internal/model"
)

func (c *Client) ListSpecializations(ctx context.Context) ([]model.Specialization, error) {
	var out []model.Specialization
	err := c.getList(ctx, "list_specializations", "/specializations", nil, &out)
	return out, err
}

func (c *Client) CreateSpecialization(ctx context.Context, payload interface{}, image *FilePart) (model.Specialization, error) {
	var out model.Specialization
	var err error
	if image != nil {
		err = c.mutateMultipart(ctx, "create_specialization", http.MethodPost, "/specializations", jsonFields(payload), image, &out)
	} else {
		err = c.mutate(ctx, "create_specialization", http.MethodPost, "/specializations", payload, &out)
	}
	return out, err
}

func (c *Client) UpdateSpecialization(ctx context.Context, id string, payload interface{}, image *FilePart) error {
	if image != nil {
		return c.mutateMultipart(ctx, "update_specialization", http.MethodPut, "/specializations/"+id, jsonFields(payload), image, nil)
	}
	return c.mutate(ctx, "update_specialization", http.MethodPut, "/specializations/"+id, payload, nil)
}

func (c *Client) DeleteSpecialization(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_specialization", http.MethodDelete, "/specializations/"+id, nil, nil)
}

// SetSpecializationActive sends the new desired flag; the upstream flips
// server-side state and the caller refetches.
func (c *Client) SetSpecializationActive(ctx context.Context, id string, active bool) error {
	return c.mutate(ctx, "toggle_specialization", http.MethodPatch, "/specializations/"+id+"/active",
		map[string]bool{"isActive": active}, nil)
}

func (c *Client) ListCourses(ctx context.Context, specializationID string) ([]model.Course, error) {
	query := url.Values{}
	if specializationID != "" {
		query.Set("specializationId", specializationID)
	}
	var out []model.Course
	err := c.getList(ctx, "list_courses", "/courses", query, &out)
	return out, err
}

func (c *Client) CreateCourse(ctx context.Context, payload interface{}, image *FilePart) (model.Course, error) {
	var out model.Course
	var err error
	if image != nil {
		err = c.mutateMultipart(ctx, "create_course", http.MethodPost, "/courses", jsonFields(payload), image, &out)
	} else {
		err = c.mutate(ctx, "create_course", http.MethodPost, "/courses", payload, &out)
	}
	return out, err
}

func (c *Client) UpdateCourse(ctx context.Context, id string, payload interface{}, image *FilePart) error {
	if image != nil {
		return c.mutateMultipart(ctx, "update_course", http.MethodPut, "/courses/"+id, jsonFields(payload), image, nil)
	}
	return c.mutate(ctx, "update_course", http.MethodPut, "/courses/"+id, payload, nil)
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_course", http.MethodDelete, "/courses/"+id, nil, nil)
}

func (c *Client) SetCourseActive(ctx context.Context, id string, active bool) error {
	return c.mutate(ctx, "toggle_course", http.MethodPatch, "/courses/"+id+"/active",
		map[string]bool{"isActive": active}, nil)
}

func (c *Client) ListInstructors(ctx context.Context, courseID string) ([]model.Instructor, error) {
	query := url.Values{}
	if courseID != "" {
		query.Set("courseId", courseID)
	}
	var out []model.Instructor
	err := c.getList(ctx, "list_instructors", "/instructors", query, &out)
	return out, err
}

func (c *Client) ListLevels(ctx context.Context, courseID string) ([]model.CourseLevel, error) {
	query := url.Values{}
	if courseID != "" {
		query.Set("courseId", courseID)
	}
	var out []model.CourseLevel
	err := c.getList(ctx, "list_levels", "/course-levels", query, &out)
	return out, err
}

func (c *Client) CreateLevel(ctx context.Context, payload interface{}, image *FilePart) (model.CourseLevel, error) {
	var out model.CourseLevel
	var err error
	if image != nil {
		err = c.mutateMultipart(ctx, "create_level", http.MethodPost, "/course-levels", jsonFields(payload), image, &out)
	} else {
		err = c.mutate(ctx, "create_level", http.MethodPost, "/course-levels", payload, &out)
	}
	return out, err
}

func (c *Client) UpdateLevel(ctx context.Context, id string, payload interface{}, image *FilePart) error {
	if image != nil {
		return c.mutateMultipart(ctx, "update_level", http.MethodPut, "/course-levels/"+id, jsonFields(payload), image, nil)
	}
	return c.mutate(ctx, "update_level", http.MethodPut, "/course-levels/"+id, payload, nil)
}

func (c *Client) DeleteLevel(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_level", http.MethodDelete, "/course-levels/"+id, nil, nil)
}

func (c *Client) SetLevelActive(ctx context.Context, id string, active bool) error {
	return c.mutate(ctx, "toggle_level", http.MethodPatch, "/course-levels/"+id+"/active",
		map[string]bool{"isActive": active}, nil)
}
