package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	CheckEmail(ctx context.Context, email string) error
	CheckUsername(ctx context.Context, username string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The first word is the command, an optional second word its argument.
// Command errors are printed and the loop goes on; it ends on EOF or
// "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		fmt.Printf("mb %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, passwd, checkemail, checkusername, logout, exit")
			} else {
				printlnFn("Available commands: register, login, checkemail, checkusername, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "passwd":
			cmdErr = a.ChangePassword(ctx)

		case "checkemail":
			cmdErr = a.CheckEmail(ctx, arg)

		case "checkusername":
			cmdErr = a.CheckUsername(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
