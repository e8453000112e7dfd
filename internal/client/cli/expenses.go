package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

func (a *App) addExpense(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	amountStr, err := GetSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		fmt.Println("Invalid amount:", amountStr)
		return
	}
	kind, err := GetSimpleText(a.reader, "Type (income/expense)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	if kind == "" {
		kind = string(models.KindExpense)
	}
	category, err := GetSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}

	id, err := a.manager.Add(ctx, models.CollectionExpenses, &models.Expense{
		Meta:     models.Meta{UserID: a.userID},
		Title:    title,
		Amount:   amount,
		Category: category,
		Kind:     models.ExpenseKind(kind),
		Date:     time.Now().UTC(),
	})
	if err != nil {
		a.log.Error(ctx, "adding expense failed", "error", err)
		return
	}
	fmt.Println("Added expense", id)
}

func (a *App) listExpenses(ctx context.Context) {
	items, err := a.store.Expenses.ListByUser(ctx, a.userID)
	if err != nil {
		a.log.Error(ctx, "listing expenses failed", "error", err)
		return
	}
	var balance float64
	for _, e := range items {
		sign := "-"
		if e.Kind == models.KindIncome {
			sign = "+"
			balance += e.Amount
		} else {
			balance -= e.Amount
		}
		fmt.Printf("%s %s  %s%.2f %s (%s) [%s]\n",
			e.Date.Format("2006-01-02"), e.ID, sign, e.Amount, e.Title, e.Category, e.SyncStatus)
	}
	fmt.Printf("Balance: %.2f\n", balance)
}
