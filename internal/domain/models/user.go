package models

// User is an operator account. The lowercased username keys the User
// document. Password carries the bcrypt hash once the account has been
// loaded or created; it only ever holds plaintext in transit to a
// password update.
type User struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
	Admin     bool
	Active    bool
}
