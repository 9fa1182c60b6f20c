package twsesync

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/datatable"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/shopspring/decimal"
)

func TestStockGrid_EngineProperties(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "webserver_test")

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	db := config.GetDB()
	ctx := context.Background()

	rows := []models.ExchangeReportStockDay{
		{TradeDate: "1141125", Code: "0050", Name: "元大台灣50", TradeVolume: 900, ClosingPrice: decimal.NewFromInt(60)},
		{TradeDate: "1141126", Code: "0050", Name: "元大台灣50", TradeVolume: 1000, ClosingPrice: decimal.NewFromInt(61)},
		{TradeDate: "1141126", Code: "0056", Name: "元大高股息", TradeVolume: 800, ClosingPrice: decimal.NewFromInt(38)},
		{TradeDate: "1141126", Code: "2330", Name: "台積電", TradeVolume: 5000, ClosingPrice: decimal.NewFromInt(580)},
		{TradeDate: "1141126", Code: "2317", Name: "鴻海", TradeVolume: 3000, ClosingPrice: decimal.NewFromInt(105)},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed stock rows: %v", err)
	}

	t.Run("search matches code and name substrings", func(t *testing.T) {
		req := datatable.Request{Draw: 1, Start: 0, Length: 10, SearchTerm: "50"}
		resp, err := datatable.Execute(ctx, db, req, stockDescriptor())
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if resp.RecordsTotal != 5 {
			t.Fatalf("recordsTotal = %d, want 5", resp.RecordsTotal)
		}
		// "50" hits code 0050 twice and name 元大台灣50 on both dates.
		if resp.RecordsFiltered != 2 {
			t.Fatalf("recordsFiltered = %d, want 2", resp.RecordsFiltered)
		}
		if resp.RecordsTotal < resp.RecordsFiltered {
			t.Fatalf("total %d < filtered %d", resp.RecordsTotal, resp.RecordsFiltered)
		}
	})

	t.Run("pagination is complete and duplicate free", func(t *testing.T) {
		seen := map[string]bool{}
		for start := 0; start < 5; start += 2 {
			req := datatable.Request{Draw: 1, Start: start, Length: 2, SortColumn: "code"}
			resp, err := datatable.Execute(ctx, db, req, stockDescriptor())
			if err != nil {
				t.Fatalf("Execute start=%d: %v", start, err)
			}
			page, ok := resp.Data.([]StockRow)
			if !ok {
				t.Fatalf("unexpected data type %T", resp.Data)
			}
			if len(page) > 2 {
				t.Fatalf("page window exceeded: %d rows", len(page))
			}
			for _, row := range page {
				key := row.TradeDate + "/" + row.Code
				if seen[key] {
					t.Fatalf("row %s appeared on two pages", key)
				}
				seen[key] = true
			}
		}
		if len(seen) != 5 {
			t.Fatalf("paging visited %d rows, want 5", len(seen))
		}
	})

	t.Run("unknown sort column falls back to default order", func(t *testing.T) {
		req := datatable.Request{Draw: 1, Start: 0, Length: 10, SortColumn: "nonsense"}
		resp, err := datatable.Execute(ctx, db, req, stockDescriptor())
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		page := resp.Data.([]StockRow)
		if len(page) != 5 {
			t.Fatalf("got %d rows, want 5", len(page))
		}
		for i := 1; i < len(page); i++ {
			prev, cur := page[i-1], page[i]
			if prev.TradeDate > cur.TradeDate {
				t.Fatalf("rows not ordered by trade date: %s before %s", prev.TradeDate, cur.TradeDate)
			}
			if prev.TradeDate == cur.TradeDate && prev.Code > cur.Code {
				t.Fatalf("tie-break by code violated: %s before %s", prev.Code, cur.Code)
			}
		}
	})
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("webserver-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=webserver_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
