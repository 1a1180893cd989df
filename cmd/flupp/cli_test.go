package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flupp/internal/flupp"
	"flupp/internal/logbook"
	"flupp/internal/stats"
	"flupp/internal/testsupport"
)

func TestParseCommandJSON(t *testing.T) {
	path := testsupport.WriteSample(t, t.TempDir(), "sample.flu")

	stdout, _, err := runCLI(t, []string{"parse", "--json", path}, "")
	if err != nil {
		t.Fatalf("parse --json: %v", err)
	}
	var doc flupp.Document
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if doc.GeneralSettings == nil || doc.GeneralSettings.PilotName != "Max Pilot" {
		t.Fatalf("unexpected general settings %+v", doc.GeneralSettings)
	}
	if len(doc.FlightLogs) != 2 || doc.FlightCount() != 3 {
		t.Fatalf("expected 2 logs with 3 flights, got %d logs with %d flights", len(doc.FlightLogs), doc.FlightCount())
	}
}

func TestParseCommandSummary(t *testing.T) {
	path := testsupport.WriteSample(t, t.TempDir(), "sample.flu")

	stdout, _, err := runCLI(t, []string{"parse", path}, "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, stdout, "LSV Example")
	requireContains(t, stdout, "Segelflug")
	requireContains(t, stdout, "Motorflug")
	requireContains(t, stdout, "D-KAAA, D-KBBB")
}

func TestParseCommandReportsDecodeErrors(t *testing.T) {
	path := testsupport.WriteLogbook(t, filepath.Join(t.TempDir(), "old.flu"), []byte("3\n:x"))

	_, _, err := runCLI(t, []string{"parse", path}, "")
	if err == nil {
		t.Fatal("expected error for unsupported version")
	}
	requireContains(t, err.Error(), "unsupported FluPP file version")
}

func TestFlightsCommandSelectsLog(t *testing.T) {
	path := testsupport.WriteSample(t, t.TempDir(), "sample.flu")

	stdout, _, err := runCLI(t, []string{"flights", "--log", "2", "--json", path}, "")
	if err != nil {
		t.Fatalf("flights: %v", err)
	}
	var flights []flupp.Flight
	if err := json.Unmarshal([]byte(stdout), &flights); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(flights) != 1 || flights[0].AircraftType != "C172" {
		t.Fatalf("unexpected flights %+v", flights)
	}

	if _, _, err := runCLI(t, []string{"flights", "--log", "3", path}, ""); err == nil {
		t.Fatal("expected error for missing flight log")
	}

	stdout, _, err = runCLI(t, []string{"flights", path}, "")
	if err != nil {
		t.Fatalf("flights table: %v", err)
	}
	requireContains(t, stdout, "Schulflug")
	requireContains(t, stdout, "312.5")
}

func TestTotalsCommandJSON(t *testing.T) {
	path := testsupport.WriteSample(t, t.TempDir(), "sample.flu")

	stdout, _, err := runCLI(t, []string{"totals", "--json", path}, "")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	var report stats.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if report.Overall.Flights != 3 || report.Overall.Landings != 5 {
		t.Fatalf("unexpected totals %+v", report.Overall)
	}
	if report.Overall.FlightTime != 5*time.Hour+45*time.Minute {
		t.Fatalf("unexpected flight time %s", report.Overall.FlightTime)
	}
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"schema"}, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(stdout), &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema["title"] != "FluPP logbook" {
		t.Fatalf("unexpected title %v", schema["title"])
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", stdout)
	}
	if _, ok := props["flight_logs"]; !ok {
		t.Fatalf("expected flight_logs property, got %v", props)
	}
	requireContains(t, stdout, `"format": "date"`)
}

func TestImportAndManageImports(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteSample(t, env.baseDir, "club.flu")

	stdout, _, err := runCLI(t, []string{"import", path}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, stdout, "[OK]")
	requireContains(t, stdout, "2 flight logs, 3 flights")

	stdout, _, err = runCLI(t, []string{"import", path}, env.configPath)
	if err != nil {
		t.Fatalf("repeat import: %v", err)
	}
	requireContains(t, stdout, "[SKIP]")

	stdout, _, err = runCLI(t, []string{"imports", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("imports list: %v", err)
	}
	var imports []logbook.Import
	if err := json.Unmarshal([]byte(stdout), &imports); err != nil {
		t.Fatalf("decode imports: %v", err)
	}
	if len(imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(imports))
	}
	id := imports[0].ID
	if imports[0].SourceName != "club.flu" || imports[0].FlightCount != 3 {
		t.Fatalf("unexpected import %+v", imports[0])
	}

	stdout, _, err = runCLI(t, []string{"imports", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("imports list table: %v", err)
	}
	requireContains(t, stdout, id)
	requireContains(t, stdout, "Max Pilot")

	stdout, _, err = runCLI(t, []string{"imports", "show", id}, env.configPath)
	if err != nil {
		t.Fatalf("imports show: %v", err)
	}
	requireContains(t, stdout, "Segelflug")
	requireContains(t, stdout, "C172")

	exportPath := filepath.Join(env.baseDir, "export.flu")
	if _, _, err := runCLI(t, []string{"imports", "export", id, "-o", exportPath}, env.configPath); err != nil {
		t.Fatalf("imports export: %v", err)
	}
	exported, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(exported) != testsupport.SampleLogbook {
		t.Fatal("exported source differs from the imported file")
	}

	stdout, _, err = runCLI(t, []string{"imports", "remove", id}, env.configPath)
	if err != nil {
		t.Fatalf("imports remove: %v", err)
	}
	requireContains(t, stdout, "removed")

	stdout, _, err = runCLI(t, []string{"imports", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("imports list after remove: %v", err)
	}
	requireContains(t, stdout, "No imports stored")

	if _, _, err := runCLI(t, []string{"imports", "show", id}, env.configPath); err == nil {
		t.Fatal("expected error showing a removed import")
	}
}

func TestImportForceStoresDuplicate(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteSample(t, env.baseDir, "club.flu")

	for _, args := range [][]string{{"import", path}, {"import", "--force", path}} {
		if _, _, err := runCLI(t, args, env.configPath); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	stdout, _, err := runCLI(t, []string{"imports", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("imports list: %v", err)
	}
	var imports []logbook.Import
	if err := json.Unmarshal([]byte(stdout), &imports); err != nil {
		t.Fatalf("decode imports: %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("expected 2 imports with --force, got %d", len(imports))
	}
}

func TestImportReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t)
	good := testsupport.WriteSample(t, env.baseDir, "good.flu")
	bad := testsupport.WriteLogbook(t, filepath.Join(env.baseDir, "bad.flu"), []byte("4\n:T\n[TableCols]Dat;StT;LaT\n"))

	stdout, _, err := runCLI(t, []string{"import", good, bad}, env.configPath)
	if err == nil {
		t.Fatal("expected error when one file fails")
	}
	requireContains(t, err.Error(), "1 of 2")
	requireContains(t, stdout, "[ERROR]")
	requireContains(t, stdout, "[OK]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, "Configuration valid")
	requireContains(t, stdout, env.cfg.DatabasePath())

	target := filepath.Join(env.baseDir, "new", "config.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatalf("sample config missing [paths]: %s", data)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error without --overwrite")
	}
}
