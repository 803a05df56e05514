package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// Add collects the fields of a new sweet and creates it through the
// backend.
func (a *App) Add(ctx context.Context) error {
	if !a.allowed(true) {
		return nil
	}

	sweet, err := a.inputSweet(models.Sweet{})
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	_, err = a.catalog.Create(ctx, sweet)
	return err
}

// Edit updates an existing sweet. Empty input keeps the current value of a
// field.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.allowed(true) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: edit <id>")
		return nil
	}

	id := models.ID(args[0])
	current, okFound := a.catalog.Get(id)
	if !okFound {
		if err := a.catalog.Refresh(ctx); err != nil {
			return err
		}
		if current, okFound = a.catalog.Get(id); !okFound {
			printlnFn("Unknown sweet id:", args[0])
			return nil
		}
	}

	sweet, err := a.inputSweet(current)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	sweet.Id = id

	_, err = a.catalog.Update(ctx, id, sweet)
	return err
}

// Delete removes a sweet through the backend.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.allowed(true) {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: delete <id>")
		return nil
	}

	return a.catalog.Delete(ctx, models.ID(args[0]))
}

// Restock increases the stock of a sweet by a positive amount.
func (a *App) Restock(ctx context.Context, args []string) error {
	if !a.allowed(true) {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: restock <id> <amount>")
		return nil
	}

	amount, err := strconv.Atoi(args[1])
	if err != nil || amount <= 0 {
		printlnFn("Restock amount must be a positive number.")
		return nil
	}

	_, err = a.catalog.Restock(ctx, models.ID(args[0]), amount)
	return err
}

// inputSweet prompts for the sweet form fields. When editing, current holds
// the values kept on empty input.
func (a *App) inputSweet(current models.Sweet) (models.Sweet, error) {
	sweet := current

	name, err := GetSimpleText(a.reader, prompt("Enter name", current.Name), os.Stdout)
	if err != nil {
		return models.Sweet{}, err
	}
	if name != "" {
		sweet.Name = name
	}
	if sweet.Name == "" {
		return models.Sweet{}, fmt.Errorf("name is required")
	}

	category, err := GetSimpleText(a.reader, prompt("Enter category", current.Category), os.Stdout)
	if err != nil {
		return models.Sweet{}, err
	}
	if category != "" {
		sweet.Category = category
	}
	if sweet.Category == "" {
		return models.Sweet{}, fmt.Errorf("category is required")
	}

	priceText, err := GetSimpleText(a.reader, prompt("Enter price", current.Price.String()), os.Stdout)
	if err != nil {
		return models.Sweet{}, err
	}
	if priceText != "" {
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return models.Sweet{}, fmt.Errorf("invalid price %q", priceText)
		}
		sweet.Price = price
	}
	if sweet.Price.IsNegative() {
		return models.Sweet{}, fmt.Errorf("price must not be negative")
	}

	quantityText, err := GetSimpleText(a.reader, prompt("Enter quantity", strconv.Itoa(current.Quantity)), os.Stdout)
	if err != nil {
		return models.Sweet{}, err
	}
	if quantityText != "" {
		quantity, err := strconv.Atoi(quantityText)
		if err != nil || quantity < 0 {
			return models.Sweet{}, fmt.Errorf("invalid quantity %q", quantityText)
		}
		sweet.Quantity = quantity
	}

	description, err := GetMultiline(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return models.Sweet{}, err
	}
	if description != "" {
		sweet.Description = description
	}

	return sweet, nil
}

func prompt(label, current string) string {
	if current == "" || current == "0" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, current)
}
