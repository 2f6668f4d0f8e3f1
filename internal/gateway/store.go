package gateway

import "context"

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type InvestmentInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Tier    string `json:"tier"`
	Message string `json:"message,omitempty"`
}

func (c *Client) SubscribeNewsletter(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{email}
	return c.post(ctx, "/store/newsletter/", body, nil)
}

func (c *Client) SubmitContact(ctx context.Context, input ContactInput) error {
	return c.post(ctx, "/store/contact/", input, nil)
}

func (c *Client) SubmitInvestment(ctx context.Context, input InvestmentInput) error {
	return c.post(ctx, "/store/investment/", input, nil)
}
