package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleLogbook is a small FluPP export with two flight logs and three flights.
const SampleLogbook = "4\r\n" +
	"[GenSettings]LSV Example;Hauptstr. 1;Musterstadt;Max Pilot\r\n" +
	":Segelflug\r\n" +
	"[LicSettings]12;3:30;x;01.04.15;D-;a;b;c;km\r\n" +
	"[AId]D-KAAA;D-KBBB\r\n" +
	"[AType]ASK 21;LS4\r\n" +
	"[TableCols]Num;Dat;ATy;AId;Pi1;Pi2;Pas;ToS;StT;LaT;FlT;NoL;StL;LaL;Rem;Dst;Cat\r\n" +
	"1;01.05.23;ASK 21;D-KAAA;Max Pilot;Fluglehrer;0;W;10:00;10:45;0:45;1;EDXX;EDXX;Schulflug;;Schulung\r\n" +
	"2;02.05.23;LS4;D-KBBB;Max Pilot;;0;F;12:15;15:45;3:30;1;EDXX;EDYY;;312.5;Ueberland\r\n" +
	":Motorflug\r\n" +
	"[LicSettings]0\r\n" +
	"[TableCols]ATy;AId;Dat;StT;LaT;FlT;StB;LaB;BlT;NoL\r\n" +
	"C172;D-EABC;15.06.23;09:00;10:30;1:30;08:50;10:40;1:50;3\r\n"

// WriteSample writes SampleLogbook to dir/name and returns the path.
func WriteSample(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteLogbook(t, filepath.Join(dir, name), []byte(SampleLogbook))
}

// WriteLogbook writes data to path, creating parent directories.
func WriteLogbook(t testing.TB, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
