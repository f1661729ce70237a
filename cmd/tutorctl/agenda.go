package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/justute/tutorboard-api/pkg/planner"
)

func newAgendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the sessions of one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = planner.KeyOf(time.Now()).String()
			}
			if _, err := planner.ParseDayKey(date); err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}

			c := newClient(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			day, err := c.Day(ctx, date)
			if err != nil {
				return err
			}

			fmt.Println(day.Date)
			if len(day.Sessions) == 0 {
				fmt.Println("  no sessions")
				return nil
			}
			for _, session := range day.Sessions {
				line := fmt.Sprintf("  %s-%s  %s  %s",
					session.StartTime.Format("15:04"),
					session.EndTime.Format("15:04"),
					session.StudentName,
					session.Subject)
				if topics := planner.ParseTopics(session.Topic); len(topics) > 0 {
					line += "  [" + strings.Join(topics, ", ") + "]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().String("date", "", "day to show (YYYY-MM-DD, default today)")

	return cmd
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the month grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, _ := cmd.Flags().GetString("month")
			if month == "" {
				month = time.Now().Format("2006-01")
			}
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
			}

			c := newClient(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			grid, err := c.Month(ctx, month)
			if err != nil {
				return err
			}

			fmt.Println(grid.Month)
			fmt.Println(" Su  Mo  Tu  We  Th  Fr  Sa")
			for i, cell := range grid.Cells {
				day, err := planner.ParseDayKey(cell.Date)
				if err != nil {
					return err
				}
				mark := " "
				if cell.HasEvents {
					mark = "*"
				}
				if !cell.InMonth {
					fmt.Printf("  . ")
				} else {
					fmt.Printf("%3d%s", day.Day, mark)
				}
				if (i+1)%7 == 0 {
					fmt.Println()
				}
			}
			return nil
		},
	}

	cmd.Flags().String("month", "", "month to show (YYYY-MM, default current)")

	return cmd
}
