package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
	"ems/internal/domain/reports"
	"ems/internal/platform/config"
	"ems/internal/platform/db"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emsctl",
		Short: "emsctl - payroll statements, pay reports and database chores for EMS",
		Long: `emsctl derives pay statements and pay reports from an employee roster.

The roster is read from --roster (a JSON array of employee records) or, when
omitted, from the database configured through DB_DRIVER and DATABASE_URL.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}
	cmd.PersistentFlags().String("roster", "", "JSON roster file to read instead of the database")

	cmd.AddCommand(newStatementsCmd(), newReportCmd(), newMigrateCmd(), newHashPasswordCmd())
	return cmd
}

func newStatementsCmd() *cobra.Command {
	now := time.Now().UTC()
	var (
		year, month int
		employeeID  int64
		format      string
	)
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Print the semi-monthly pay statements of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath, _ := cmd.Flags().GetString("roster")
			roster, err := loadRoster(cmd.Context(), rosterPath)
			if err != nil {
				return err
			}
			if employeeID != 0 {
				filtered := make([]employee.Employee, 0, 1)
				for _, emp := range roster {
					if emp.ID == employeeID {
						filtered = append(filtered, emp)
					}
				}
				roster = filtered
			}

			statements, err := payroll.ExpandMonth(year, time.Month(month), roster)
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				return payroll.WriteCSV(cmd.OutOrStdout(), statements)
			case "table":
				printStatements(cmd, statements)
				return nil
			}
			return fmt.Errorf("unknown format %q, want table or csv", format)
		},
	}
	cmd.Flags().IntVar(&year, "year", now.Year(), "calendar year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "calendar month (1-12)")
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "only this employee id")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")
	return cmd
}

func printStatements(cmd *cobra.Command, statements []payroll.Statement) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Name", "Pay date", "Gross", "Federal", "State", "Medicare", "Soc. sec.", "Retirement", "Health", "Net"})
	for _, stmt := range payroll.Views(statements) {
		table.Append([]string{
			strconv.FormatInt(stmt.EmployeeID, 10),
			stmt.EmployeeName,
			stmt.PayDate,
			stmt.GrossPay,
			stmt.FederalTax,
			stmt.StateTax,
			stmt.MedicareTax,
			stmt.SocialSecurityTax,
			stmt.Retirement,
			stmt.HealthInsurance,
			stmt.NetPay,
		})
	}
	table.Render()
}

func newReportCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print monthly pay grouped by job title or division",
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := reports.ParseDimension(by)
			if err != nil {
				return err
			}
			rosterPath, _ := cmd.Flags().GetString("roster")
			roster, err := loadRoster(cmd.Context(), rosterPath)
			if err != nil {
				return err
			}
			report, err := reports.Build(dim, roster)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{string(dim), "Employees", "Monthly pay", "% of total"})
			for _, line := range report.Lines {
				table.Append([]string{line.Key, strconv.Itoa(line.EmployeeCount), line.TotalMonthlyPay, line.PercentOfTotal})
			}
			table.SetFooter([]string{"Total", strconv.Itoa(report.EmployeeCount), report.GrandTotal, report.PercentTotal})
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", string(reports.DimensionJobTitle), "grouping: job_title or division")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			conn, err := db.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := db.Migrate(cmd.Context(), conn, cfg.DBDriver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash suitable for seeding a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
