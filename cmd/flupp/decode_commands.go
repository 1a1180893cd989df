package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"flupp/internal/flupp"
	"flupp/internal/source"
	"flupp/internal/stats"
)

func loadDocument(path string) (*flupp.Document, error) {
	data, err := source.Read(path)
	if err != nil {
		return nil, err
	}
	doc, err := flupp.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func newParseCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "parse FILE",
		Short:       "Decode a logbook and summarize its flight logs",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, doc)
			}
			printDocumentSummary(cmd, doc)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decoded document as JSON")
	return cmd
}

func printDocumentSummary(cmd *cobra.Command, doc *flupp.Document) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("General settings", colorize) {
		fmt.Fprintln(out, line)
	}
	if gs := doc.GeneralSettings; gs != nil {
		fmt.Fprintf(out, "Club:     %s\n", gs.Name)
		fmt.Fprintf(out, "Address:  %s, %s\n", gs.Road, gs.Location)
		fmt.Fprintf(out, "Pilot:    %s\n", gs.PilotName)
	} else {
		fmt.Fprintln(out, "(none)")
	}
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Flight logs", colorize) {
		fmt.Fprintln(out, line)
	}
	rows := make([][]string, 0, len(doc.FlightLogs))
	for i := range doc.FlightLogs {
		log := &doc.FlightLogs[i]
		lic := log.LicenseSettings
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			log.Title,
			strconv.Itoa(len(log.Flights)),
			strconv.FormatUint(uint64(lic.Starts), 10),
			stats.FormatDuration(lic.Time),
			formatDatePtr(lic.LicenseSince),
			joinOrDash(log.AircraftIDs),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Flights", "Prior starts", "Prior time", "Licensed", "Aircraft"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	))
}

func newFlightsCommand() *cobra.Command {
	var (
		logIndex int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:         "flights FILE",
		Short:       "List the flights of a logbook",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			logs := doc.FlightLogs
			if logIndex > 0 {
				if logIndex > len(logs) {
					return fmt.Errorf("flight log %d does not exist (file has %d)", logIndex, len(logs))
				}
				logs = logs[logIndex-1 : logIndex]
			}
			if asJSON {
				var flights []flupp.Flight
				for i := range logs {
					flights = append(flights, logs[i].Flights...)
				}
				if flights == nil {
					flights = []flupp.Flight{}
				}
				return writeJSON(cmd, flights)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for i := range logs {
				log := &logs[i]
				if i > 0 {
					fmt.Fprintln(out)
				}
				for _, line := range renderSectionHeader(log.Title, colorize) {
					fmt.Fprintln(out, line)
				}
				var totals stats.Totals
				rows := make([][]string, 0, len(log.Flights))
				for j := range log.Flights {
					totals.Add(&log.Flights[j])
					rows = append(rows, flightRow(j+1, &log.Flights[j]))
				}
				fmt.Fprintln(out, renderTableWithFooter(flightHeaders, rows, flightFooter(totals), flightAligns))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&logIndex, "log", "l", 0, "Only list flights of the Nth flight log (1-based)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print flights as JSON")
	return cmd
}

func newTotalsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "totals FILE",
		Short:       "Summarize flight time, landings and distance",
		Args:        cobra.ExactArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			report := stats.Compute(doc)
			if asJSON {
				return writeJSON(cmd, report)
			}
			printReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print totals as JSON")
	return cmd
}

var totalsHeaders = []string{"", "Flights", "Landings", "Flight time", "Block time", "Distance", "First", "Last"}

var totalsAligns = []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft}

func totalsRow(label string, t stats.Totals) []string {
	distance := ""
	if t.Distance > 0 {
		distance = strconv.FormatFloat(t.Distance, 'f', -1, 64)
	}
	return []string{
		label,
		strconv.Itoa(t.Flights),
		strconv.Itoa(t.Landings),
		stats.FormatDuration(t.FlightTime),
		stats.FormatDuration(t.BlockTime),
		distance,
		formatDatePtr(t.First),
		formatDatePtr(t.Last),
	}
}

func printReport(cmd *cobra.Command, report stats.Report) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Per flight log", colorize) {
		fmt.Fprintln(out, line)
	}
	rows := make([][]string, 0, len(report.Logs))
	for _, lt := range report.Logs {
		rows = append(rows, totalsRow(lt.Title, lt.Totals))
	}
	fmt.Fprintln(out, renderTableWithFooter(totalsHeaders, rows, totalsRow("Total", report.Overall), totalsAligns))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Per aircraft type", colorize) {
		fmt.Fprintln(out, line)
	}
	rows = rows[:0]
	for _, group := range report.Aircraft {
		label := group.Key
		if label == "" {
			label = "(unknown)"
		}
		rows = append(rows, totalsRow(label, group.Totals))
	}
	fmt.Fprintln(out, renderTable(totalsHeaders, rows, totalsAligns))
}
