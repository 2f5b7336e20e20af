// Package card tokenizes funding cards through Stripe so raw card numbers
// never reach the wallet layer.
package card

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// Input is an unstored funding card as submitted by the client.
type Input struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

// Token is the tokenized form a top-up charges against.
type Token struct {
	Token    string `json:"token"`
	CardType string `json:"cardType"`
	Expiry   string `json:"expiry"`
}

// Tokenize exchanges card details for a Stripe token. Stripe test tokens
// (tok_*) pass through untouched so integration environments work offline.
func Tokenize(card Input) (*Token, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if strings.HasPrefix(card.Number, "tok_") {
		cardType := "Unknown"
		switch card.Number {
		case "tok_visa":
			cardType = "Visa"
		case "tok_mastercard":
			cardType = "Mastercard"
		case "tok_amex":
			cardType = "American Express"
		}
		return &Token{
			Token:    card.Number,
			CardType: cardType,
			Expiry:   fmt.Sprintf("%s/%s", card.ExpiryMonth, card.ExpiryYear),
		}, nil
	}

	if !validCardNumber(card.Number) {
		return nil, errors.New("invalid card number: failed validation check")
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.Number,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe tokenization failed: %v", err)
	}

	return &Token{
		Token:    stripeToken.ID,
		CardType: string(stripeToken.Card.Brand),
		Expiry:   fmt.Sprintf("%s/%s", card.ExpiryMonth, card.ExpiryYear),
	}, nil
}

// Luhn check
func validCardNumber(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}
	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')
		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}
