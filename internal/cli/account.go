package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mfiorito/hard75/internal/account"
	"github.com/mfiorito/hard75/internal/keyring"
	"github.com/mfiorito/hard75/internal/models"
)

const requestTimeout = 15 * time.Second

type AccountCmd struct {
	CheckEmail AccountCheckEmailCmd `cmd:"" name:"check-email" help:"Check whether an email already has an account."`
	Register   AccountRegisterCmd   `cmd:"" help:"Create an account on the backend."`
	Login      AccountLoginCmd      `cmd:"" help:"Log in and store the session token in the OS keyring."`
	Logout     AccountLogoutCmd     `cmd:"" help:"Drop the stored session."`
	Whoami     AccountWhoamiCmd     `cmd:"" help:"Show the logged-in account."`
}

type AccountCheckEmailCmd struct {
	Email string `arg:"" help:"Email address to check."`
}

func (c *AccountCheckEmailCmd) Run(ctx *Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	exists, err := account.NewClient(ctx.ServerURL).CheckEmail(reqCtx, c.Email)
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("%s already has an account.\n", c.Email)
	} else {
		fmt.Printf("%s is free to register.\n", c.Email)
	}
	return nil
}

type AccountRegisterCmd struct{}

func (c *AccountRegisterCmd) Run(ctx *Context) error {
	var (
		input         account.RegisterInput
		weight        string
		height        string
		passwordAgain string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&input.Name),
			huh.NewInput().Title("Email").Value(&input.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&input.Password).
				Validate(func(s string) error {
					if len(s) < 8 {
						return errors.New("password must be at least 8 characters")
					}
					return nil
				}),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&passwordAgain),
		),
		huh.NewGroup(
			huh.NewInput().Title("Weight (kg)").Value(&weight),
			huh.NewInput().Title("Height (cm)").Value(&height),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if input.Password != passwordAgain {
		return errors.New("passwords do not match")
	}

	var err error
	if input.Weight, err = strconv.ParseFloat(weight, 64); err != nil {
		return fmt.Errorf("invalid weight %q", weight)
	}
	if input.Height, err = strconv.ParseFloat(height, 64); err != nil {
		return fmt.Errorf("invalid height %q", height)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	user, _, err := account.NewClient(ctx.ServerURL).Register(reqCtx, input)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s! Run 'hard75 account login' to start a session.\n", user.Name)
	return nil
}

type AccountLoginCmd struct {
	Email string `arg:"" optional:"" help:"Email address to log in with."`
}

func (c *AccountLoginCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	email := c.Email
	var password string

	var fields []huh.Field
	if email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&email))
	}
	fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password))
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	user, token, err := account.NewClient(ctx.ServerURL).Login(reqCtx, email, password)
	if err != nil {
		return err
	}

	if err := keyring.SetToken(token); err != nil {
		return err
	}
	session := models.Session{UserID: user.ID, Name: user.Name, Email: user.Email}
	if err := ctx.Store.SaveSession(session); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s <%s>.\n", user.Name, user.Email)
	return nil
}

type AccountLogoutCmd struct{}

func (c *AccountLogoutCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := keyring.DeleteToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	if err := ctx.Store.ClearSession(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

type AccountWhoamiCmd struct{}

func (c *AccountWhoamiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	session, err := ctx.Store.GetSession()
	if err != nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s <%s>\n", session.Name, session.Email)
	if _, err := keyring.GetToken(); err != nil {
		fmt.Println("Warning: no session token in the keyring. Run 'hard75 account login' again.")
	}
	return nil
}
