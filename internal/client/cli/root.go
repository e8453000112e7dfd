package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userID != "" {
		s = a.userID + " "
	}
	s = s + string(a.manager.Status())
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to ProdHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	_ = a.Login(ctx)

	for {
		fmt.Printf("ph %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Tasks:    addtask, tasks, done <id>, deltask <id>")
				fmt.Println("Notes:    addnote, notes, pin <id>, delnote <id>")
				fmt.Println("Expenses: addexpense, expenses")
				fmt.Println("Habits:   addhabit, habits, loghabit <habit id>")
				fmt.Println("Other:    status, sync, refresh, logout, exit")
			} else {
				fmt.Println("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "addtask":
			a.addTask(ctx)
		case "tasks":
			a.listTasks(ctx)
		case "done":
			if len(args) == 0 {
				fmt.Println("Usage: done <id>")
				continue
			}
			a.completeTask(ctx, args[0])
		case "deltask":
			if len(args) == 0 {
				fmt.Println("Usage: deltask <id>")
				continue
			}
			a.deleteTask(ctx, args[0])

		case "addnote":
			a.addNote(ctx)
		case "notes":
			a.listNotes(ctx)
		case "pin":
			if len(args) == 0 {
				fmt.Println("Usage: pin <id>")
				continue
			}
			a.pinNote(ctx, args[0])
		case "delnote":
			if len(args) == 0 {
				fmt.Println("Usage: delnote <id>")
				continue
			}
			a.deleteNote(ctx, args[0])

		case "addexpense":
			a.addExpense(ctx)
		case "expenses":
			a.listExpenses(ctx)

		case "addhabit":
			a.addHabit(ctx)
		case "habits":
			a.listHabits(ctx)
		case "loghabit":
			if len(args) == 0 {
				fmt.Println("Usage: loghabit <habit id>")
				continue
			}
			a.logHabit(ctx, args[0])

		case "status":
			a.status()
		case "sync":
			a.sync(ctx)
		case "refresh":
			a.refresh(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
