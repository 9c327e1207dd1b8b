package formaterror

import "strings"

// FormatError maps raw database/driver errors to the field-level messages
// the handlers return. Unique-constraint wording differs between postgres
// and sqlite, so match on column names.
func FormatError(err string) map[string]string {
	errorMessages := make(map[string]string)

	if strings.Contains(err, "username") {
		errorMessages["Taken_username"] = "Username is already taken"
	}
	if strings.Contains(err, "email") {
		errorMessages["Taken_email"] = "Email is already taken"
	}
	if strings.Contains(err, "slug") {
		errorMessages["Taken_slug"] = "Slug is already taken"
	}
	if strings.Contains(err, "hashedPassword") {
		errorMessages["Incorrect_password"] = "Incorrect password"
	}
	if strings.Contains(err, "record not found") {
		errorMessages["No_record"] = "No record found"
	}

	if len(errorMessages) > 0 {
		return errorMessages
	}
	return map[string]string{"Incorrect_details": "Incorrect details"}
}
