package gateway

import "context"

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var user User
	if err := c.post(ctx, "/accounts/users/", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login establishes the backend session; the session cookie lands in the
// client's jar and authenticates everything that follows.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var user User
	if err := c.post(ctx, "/accounts/users/login/", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/accounts/users/logout/", struct{}{}, nil)
}

func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	body := struct {
		Email string `json:"email"`
	}{email}

	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.post(ctx, "/accounts/users/check_email/", body, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{email}
	return c.post(ctx, "/accounts/users/request_password_reset/", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	body := struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}{email, token, newPassword}
	return c.post(ctx, "/accounts/users/reset_password/", body, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/accounts/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
