package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/metrics"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a closed trade",
	Long: `Record a closed trade. Gross and net P/L, return and the win flag are
computed from the prices, size and commission.

Examples:
  tradejournal add --asset AAPL --dir long --entry 100 --exit 110 --size 10 --commission 5
  tradejournal add --date 2024-01-15 --asset EURUSD --dir short --entry 1.0875 --exit 1.085 --size 100000`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Change fields of a recorded trade",
	Long: `Change any of the raw fields of a trade. Flags that are not given keep
their stored value; derived fields are recomputed.

Example:
  tradejournal edit 01HV3K8Q5X2ABCDEFGHJKMNPQR --exit 112 --notes "scaled out"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmCmd = &cobra.Command{
	Use:   "rm <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var showCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Print a trade as an Org-mode block",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, newest first",
	Long: `List trades in a reporting window, newest first.

Examples:
  tradejournal list
  tradejournal list --window week`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	tradeDate       string
	tradeAsset      string
	tradeDir        string
	tradeEntry      float64
	tradeExit       float64
	tradeSize       float64
	tradeCommission float64
	tradeNotes      string

	listWindow string
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVar(&tradeDate, "date", "", "trade date, YYYY-MM-DD or RFC3339 (default today)")
		c.Flags().StringVarP(&tradeAsset, "asset", "a", "", "asset or symbol traded")
		c.Flags().StringVar(&tradeDir, "dir", "", "direction: long or short")
		c.Flags().Float64Var(&tradeEntry, "entry", 0, "entry price")
		c.Flags().Float64Var(&tradeExit, "exit", 0, "exit price")
		c.Flags().Float64Var(&tradeSize, "size", 0, "position size")
		c.Flags().Float64Var(&tradeCommission, "commission", 0, "total commission paid")
		c.Flags().StringVarP(&tradeNotes, "notes", "n", "", "free-form notes")
	}
	for _, name := range []string{"asset", "dir", "entry", "exit", "size"} {
		addCmd.MarkFlagRequired(name)
	}

	listCmd.Flags().StringVarP(&listWindow, "window", "w", "all", "all, week, month or year")
}

func runAdd(cmd *cobra.Command, args []string) error {
	day := tradeDate
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	date, err := journal.ParseDate(day)
	if err != nil {
		return err
	}
	dir, err := metrics.ParseDirection(tradeDir)
	if err != nil {
		return err
	}

	in := journal.TradeInput{
		Date:         date,
		Asset:        tradeAsset,
		Direction:    dir,
		EntryPrice:   tradeEntry,
		ExitPrice:    tradeExit,
		PositionSize: tradeSize,
		Commission:   tradeCommission,
	}
	if tradeNotes != "" {
		in.Notes = &tradeNotes
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.Create(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	printSaved(cmd, "Recorded", t)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	cur, err := j.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	in := journal.TradeInput{
		Date:         cur.Date,
		Asset:        cur.Asset,
		Direction:    cur.Direction,
		EntryPrice:   cur.EntryPrice,
		ExitPrice:    cur.ExitPrice,
		PositionSize: cur.PositionSize,
		Commission:   cur.Commission,
		Notes:        cur.Notes,
	}

	flags := cmd.Flags()
	if flags.Changed("date") {
		if in.Date, err = journal.ParseDate(tradeDate); err != nil {
			return err
		}
	}
	if flags.Changed("dir") {
		if in.Direction, err = metrics.ParseDirection(tradeDir); err != nil {
			return err
		}
	}
	if flags.Changed("asset") {
		in.Asset = tradeAsset
	}
	if flags.Changed("entry") {
		in.EntryPrice = tradeEntry
	}
	if flags.Changed("exit") {
		in.ExitPrice = tradeExit
	}
	if flags.Changed("size") {
		in.PositionSize = tradeSize
	}
	if flags.Changed("commission") {
		in.Commission = tradeCommission
	}
	if flags.Changed("notes") {
		in.Notes = &tradeNotes
	}

	t, err := j.Update(cmd.Context(), args[0], in)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}

	printSaved(cmd, "Updated", t)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	w, err := journal.ParseWindow(listWindow)
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.Find(cmd.Context(), w.Query(time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	return journal.PrintTrades(cmd.OutOrStdout(), trades)
}

func printSaved(cmd *cobra.Command, verb string, t metrics.Trade) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s trade %s\n", verb, t.ID)
	fmt.Fprintf(out, "  %s %s %s  entry %g  exit %g  size %g\n",
		t.Date.Format("2006-01-02"), t.Asset, t.Direction, t.EntryPrice, t.ExitPrice, t.PositionSize)
	fmt.Fprintf(out, "  Gross %s  Net %s  Return %s\n",
		metrics.FormatCurrency(t.GrossPL), metrics.FormatCurrency(t.NetPL), metrics.FormatPercent(t.ReturnPercent))
}
