// Package cli is the interactive terminal client of the authentication API.
//
// App wires the configuration and the HTTP API client into a REPL started
// by App.Run. Commands:
//
//	register              create an account (email, username, password)
//	login                 obtain a token for the guarded commands
//	profile               show username and email of the logged-in account
//	passwd                change the password
//	checkemail [email]    is the email still free
//	checkusername [name]  is the username still free
//	logout                forget the token
//	help, exit
//
// Passwords are read without echo. A background watcher pings the server
// and shows online/offline in the prompt.
package cli
