package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "salesclean ") {
		t.Errorf("output = %q", out)
	}
}

func TestSampleThenClean(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	output := filepath.Join(dir, "cleaned.csv")
	reportPath := filepath.Join(dir, "report.yaml")
	metricsPath := filepath.Join(dir, "salesclean.prom")

	out, err := execute(t, "sample", "-o", input, "-n", "120", "--duplicates", "0.1")
	if err != nil {
		t.Fatalf("sample error = %v (%s)", err, out)
	}
	if !strings.Contains(out, "wrote 120 rows") {
		t.Errorf("sample output = %q", out)
	}

	out, err = execute(t, "clean", "-i", input, "-o", output, "--report", reportPath, "--metrics", metricsPath)
	if err != nil {
		t.Fatalf("clean error = %v (%s)", err, out)
	}
	if !strings.Contains(out, "Sales data cleaning report") {
		t.Errorf("console report missing:\n%s", out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if header != "SALES,STATUS,QUANTITYORDERED,QTR_ID,MONTH_ID,YEAR_ID,PRODUCTLINE,COUNTRY,DEALSIZE" {
		t.Errorf("output header = %q", header)
	}

	for _, path := range []string{reportPath, metricsPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s: %v", filepath.Base(path), err)
		}
	}
}

func TestClean_FatalErrorWritesNoOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.csv")
	output := filepath.Join(dir, "cleaned.csv")
	if err := os.WriteFile(input, []byte("ORDERNUMBER,SALES\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "clean", "-i", input, "-o", output, "-q")
	if err == nil {
		t.Fatal("clean should fail on a missing column")
	}
	if !strings.Contains(out, "Code: SCH001") {
		t.Errorf("error output = %q, want SCH001", out)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("output file should not be created")
	}
}
