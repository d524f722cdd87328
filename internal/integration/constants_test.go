package integration_test

const (
	TestUserFirstName = "Olga"
	TestUserLastName  = "Knipper"
	TestUserEmail     = "olga@example.com"
	TestUserPassword  = "Test123!@#"
)
