package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aiworkbench/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotSignedIn = errors.New("not signed in")

// Login signs in with username and password, prompting for whichever is
// empty. The outcome is reported through the controller's notifier; the
// returned error is the controller's.
func (a *App) Login(ctx context.Context, username string, password []byte) error {
	var err error
	if username == "" {
		username, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}

	if len(password) == 0 {
		password, err = getPassword(a.out)
		if err != nil {
			return err
		}
	}
	defer common.WipeByteArray(password)

	_, err = a.ctrl.SignIn(ctx, username, string(password))
	return err
}

// Logout ends the session. It never fails: provider errors are logged by
// the controller and the local session is always cleared.
func (a *App) Logout(ctx context.Context) error {
	a.ctrl.SignOut(ctx)
	return nil
}

// WhoAmI prints the signed-in user, or returns errNotSignedIn.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.ctrl.Snapshot()
	if !st.Authenticated() {
		fmt.Fprintln(a.out, "Not signed in")
		return errNotSignedIn
	}
	u := st.User
	fmt.Fprintf(a.out, "%s <%s>\nid:   %s\nrole: %s\n", u.DisplayName(), u.Email, u.ID, u.Role)
	if u.Profile != nil && u.Profile.Department != "" {
		fmt.Fprintf(a.out, "dept: %s\n", u.Profile.Department)
	}
	return nil
}
