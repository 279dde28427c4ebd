package integration_test

const (
	TestJWTSecret   = "integration-secret-with-enough-entropy"
	TestAdminInvite = "let-me-in"

	// User related constants
	TestUserName     = "John Doe"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	TestAdminEmail = "admin@example.com"

	// Catalog related constants
	TestMovieTitle       = "Test Movie"
	TestMovieDescription = "A test movie description."
	TestMovieCoverUrl    = "https://example.com/cover.jpg"
	TestMoviePrice       = "12.00"
	TestTheaterName      = "Hall 1"
	TestShowDate         = "2025-03-14"
	TestShowTime         = "19:30"
)
