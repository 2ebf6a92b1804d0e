package main

import (
	"fmt"
	"os"
	"path/filepath"

	"SwingBasket/internal/di"
	"SwingBasket/internal/domain/models"
	"SwingBasket/internal/repository"
	"SwingBasket/pkg/util"

	"github.com/spf13/cobra"
)

var (
	genTicker  string
	genEntry   float64
	genStop    float64
	genTarget  float64
	genClients string
	genPreview bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Validate a trade and write its basket file",
	Example: `  swingbasket generate --ticker PETR4 --entry 30 --stop 28.5 --target 34 --clients clientes.xlsx
  swingbasket generate --ticker VALE3 --entry 60 --stop 57 --target 66 --clients clientes.csv --preview`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&genTicker, "ticker", "", "B3 ticker, e.g. PETR4")
	f.Float64Var(&genEntry, "entry", 0, "entry price")
	f.Float64Var(&genStop, "stop", 0, "stop loss price")
	f.Float64Var(&genTarget, "target", 0, "target price")
	f.StringVar(&genClients, "clients", "", "client sheet (.xlsx or .csv)")
	f.BoolVar(&genPreview, "preview", false, "print the basket rows as CSV")
	_ = generateCmd.MarkFlagRequired("ticker")
	_ = generateCmd.MarkFlagRequired("clients")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	trade, err := models.NewTradeSignal(genTicker, genEntry, genStop, genTarget)
	if err != nil {
		return err
	}

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	f, err := os.Open(genClients)
	if err != nil {
		return fmt.Errorf("open clients: %w", err)
	}
	defer f.Close()

	clients, rowErrs, err := repository.NewClientFileReader(l).ReadClients(filepath.Base(genClients), f)
	if err != nil {
		return err
	}

	baskets, cleanup, err := di.InitializeBasket(cfg, l)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer cleanup()

	res, err := baskets.Generate(cmd.Context(), trade, clients)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, re := range rowErrs {
		fmt.Fprintf(out, "skipped %s\n", re.Error())
	}
	for _, m := range res.TechnicalValidation.Messages {
		fmt.Fprintln(out, m)
	}
	if !res.TradeValid {
		return fmt.Errorf("trade %s rejected", trade.Ticker)
	}
	for _, m := range res.EligibilityMessages {
		fmt.Fprintln(out, m)
	}

	fmt.Fprintf(out, "clients: %d  orders: %d  shares: %s  invested: R$ %s\n",
		res.TotalClients,
		res.Summary.TotalOrders,
		util.FormatCount(res.Summary.TotalShares),
		util.FormatMoney(res.Summary.TotalInvested),
	)
	if res.FileName != "" {
		fmt.Fprintf(out, "basket written to %s\n", filepath.Join(cfg.Output.Dir, res.FileName))
	}

	if genPreview && len(res.Orders) > 0 {
		preview, err := repository.PreviewCSV(res.Orders)
		if err != nil {
			return err
		}
		fmt.Fprint(out, preview)
	}
	return nil
}
