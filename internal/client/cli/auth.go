package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mpetrovs/prodhub/internal/client/auth"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// Login asks for a session token issued by the ProdHub web app, derives
// the user identity from it and installs it on the API client. The
// token is accepted even when the server is unreachable, so a user who
// logged in before can keep working offline with the cached data.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret("Enter session token", os.Stdout)
	if err != nil {
		return err
	}

	userID, err := auth.UserID(string(token))
	if err != nil {
		a.log.Error(ctx, "invalid session token", "error", err)
		return err
	}

	a.api.SetToken(string(token))
	a.userID = userID
	fmt.Println("Logged in as", userID)

	if a.checker.Online() {
		go a.pushThenPull(ctx)
	}
	return nil
}

// Logout wipes the user's cached records and drops the session. The
// server copies stay untouched; the next login pulls them again.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}
	if err := a.manager.ClearUserData(ctx, a.userID); err != nil {
		return err
	}
	a.api.SetToken("")
	a.userID = ""
	fmt.Println("Logged out")
	return nil
}
