package model

type UserRole string

const (
	Admin UserRole = "admin"
	Staff UserRole = "staff"
)
