package models

// This file serves as the central export point for all database models
// Import this package to access all model types

// All models are automatically exported from their respective files:
// - User, RefreshToken from user.go
// - Document from document.go
// - StudentRecord from student.go

// Database schema overview:
// 1. users - Managed by cookie-based authentication
// 2. refresh_tokens - Long-lived session tokens, hashed at rest
// 3. documents - Generic named-collection storage with jsonb payloads;
//    the "students" collection holds one StudentRecord document per user,
//    keyed by the authenticated user's id
