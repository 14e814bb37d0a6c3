package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hatauchi-tech/Fukui-BI/internal/loader"
	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

const testHeader = "事業所ｺｰﾄﾞ,事業所名,事業所略名,部課ｺｰﾄﾞ,部課名,部課略名," +
	"出力帳票,改頁№,SEQNO,科目ｺｰﾄﾞ,補助ｺｰﾄﾞ,科目名," +
	"補助科目名,科目略名,貸借区分,属性区分,罫線区分," +
	"前残高,借方,貸方,残高,開始年月,終了年月"

func testRow(deptCode int, deptName string, reportType, accountCode int, accountName, balance, period string) string {
	return fmt.Sprintf("1,福井鐵工,福鉄,%d,%s,%s,%d,1,1,%d,0,%s,,%s,0,0,0,0,0,0,%s,%s,%s",
		deptCode, deptName, deptName, reportType, accountCode, accountName, accountName, balance, period, period)
}

func writeCSV(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	content := testHeader + "\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

// setupTestData 标准测试数据：两部门、2025/07
func setupTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, dir, "2025_07_損益計算書.csv",
		testRow(210, "建機部", 0, model.AccountRevenue, "収入計", "10000000", "2025/07"),
		testRow(210, "建機部", 0, model.AccountGrossProfit, "売上総利益", "3000000", "2025/07"),
		testRow(210, "建機部", 0, model.AccountOperatingIncome, "営業利益", "2500000", "2025/07"),
		testRow(220, "インフラ部", 0, model.AccountRevenue, "収入計", "8000000", "2025/07"),
	)
	return dir
}

func setupRouter(t *testing.T, dataDir string) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(loader.New(dataDir), nil, t.TempDir())
	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, h
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
}

func TestGetStatus(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	w := doRequest(t, router, http.MethodGet, "/api/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp StatusResponse
	decodeJSON(t, w, &resp)
	if !resp.Initialized || resp.FileCount != 1 || resp.RowCount != 4 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.LatestPeriod != "2025/07" {
		t.Errorf("LatestPeriod = %q", resp.LatestPeriod)
	}
}

func TestGetKPI(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	t.Run("全公司", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/kpi?period=2025/07", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var kpi model.KPI
		decodeJSON(t, w, &kpi)
		if kpi.Revenue != 18000000 {
			t.Errorf("Revenue = %v, want 18000000", kpi.Revenue)
		}
	})

	t.Run("指定部门", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/kpi?dept=210&period=2025/07", "")
		var kpi model.KPI
		decodeJSON(t, w, &kpi)
		if kpi.GrossMargin != 30.0 {
			t.Errorf("GrossMargin = %v, want 30.0", kpi.GrossMargin)
		}
	})

	t.Run("不存在的部门返回全零", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/kpi?dept=999", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var kpi model.KPI
		decodeJSON(t, w, &kpi)
		if kpi != (model.KPI{}) {
			t.Errorf("kpi = %+v", kpi)
		}
	})

	t.Run("部课编码非整数报参数错误", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/kpi?dept=abc", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestListPeriodsAndDepartments(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	w := doRequest(t, router, http.MethodGet, "/api/periods", "")
	var periodsResp struct {
		Periods []string `json:"periods"`
		Latest  string   `json:"latest"`
	}
	decodeJSON(t, w, &periodsResp)
	if len(periodsResp.Periods) != 1 || periodsResp.Latest != "2025/07" {
		t.Errorf("periods = %+v", periodsResp)
	}

	w = doRequest(t, router, http.MethodGet, "/api/departments", "")
	var deptResp struct {
		Departments []model.Department `json:"departments"`
	}
	decodeJSON(t, w, &deptResp)
	if len(deptResp.Departments) != 2 || deptResp.Departments[0].Code != 210 {
		t.Errorf("departments = %+v", deptResp)
	}
}

func TestGetDetail(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	w := doRequest(t, router, http.MethodGet, "/api/detail?dept=210&period=2025/07&reportType=0", "")
	var resp struct {
		Rows  []model.DetailRow `json:"rows"`
		Count int               `json:"count"`
	}
	decodeJSON(t, w, &resp)
	if resp.Count != 3 || len(resp.Rows) != 3 {
		t.Errorf("resp = %+v", resp)
	}

	w = doRequest(t, router, http.MethodGet, "/api/detail?reportType=2", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestReload(t *testing.T) {
	dir := setupTestData(t)
	router, _ := setupRouter(t, dir)

	// 启动后新增一个月的数据
	writeCSV(t, dir, "2025_08_損益計算書.csv",
		testRow(210, "建機部", 0, model.AccountRevenue, "収入計", "12000000", "2025/08"),
	)

	w := doRequest(t, router, http.MethodPost, "/api/reload", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Report  model.LoadReport `json:"report"`
		Periods []string         `json:"periods"`
		Latest  string           `json:"latest"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Report.LoadedFiles) != 2 {
		t.Errorf("LoadedFiles = %v", resp.Report.LoadedFiles)
	}
	if resp.Latest != "2025/08" {
		t.Errorf("Latest = %q, want 2025/08", resp.Latest)
	}
	// 选择项与 report 出自同一次加载的快照
	wantPeriods := []string{"2025/07", "2025/08"}
	if !reflect.DeepEqual(resp.Periods, wantPeriods) {
		t.Errorf("Periods = %v, want %v", resp.Periods, wantPeriods)
	}

	// 刷新后查询应看到新数据
	w = doRequest(t, router, http.MethodGet, "/api/kpi?period=2025/08", "")
	var kpi model.KPI
	decodeJSON(t, w, &kpi)
	if kpi.Revenue != 12000000 {
		t.Errorf("Revenue = %v, want 12000000", kpi.Revenue)
	}
}

func TestExportAndDownload(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	w := doRequest(t, router, http.MethodPost, "/api/export",
		`{"period":"2025/07","reportType":0,"format":"csv"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token       string `json:"token"`
		Filename    string `json:"filename"`
		RowCount    int    `json:"rowCount"`
		DownloadURL string `json:"downloadUrl"`
	}
	decodeJSON(t, w, &resp)
	if resp.Token == "" || resp.RowCount != 4 {
		t.Errorf("resp = %+v", resp)
	}

	w = doRequest(t, router, http.MethodGet, resp.DownloadURL, "")
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "\uFEFF部課名") {
		t.Error("downloaded file should start with BOM + header")
	}

	// 令牌不存在
	w = doRequest(t, router, http.MethodGet, "/api/export/download/deadbeef", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDownloadExport_令牌一次性(t *testing.T) {
	router, h := setupRouter(t, setupTestData(t))

	w := doRequest(t, router, http.MethodPost, "/api/export",
		`{"period":"2025/07","reportType":0,"format":"csv"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Filename    string `json:"filename"`
		DownloadURL string `json:"downloadUrl"`
	}
	decodeJSON(t, w, &resp)

	w = doRequest(t, router, http.MethodGet, resp.DownloadURL, "")
	if w.Code != http.StatusOK {
		t.Fatalf("first download status = %d", w.Code)
	}

	// 下载完成后令牌失效，同一 URL 再次请求应 404
	w = doRequest(t, router, http.MethodGet, resp.DownloadURL, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second download status = %d, want 404", w.Code)
	}

	// 导出文件随令牌一并清理
	if _, err := os.Stat(filepath.Join(h.exportDir, resp.Filename)); !os.IsNotExist(err) {
		t.Errorf("exported file should be removed after download, stat err = %v", err)
	}
}

func TestExport_参数校验(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	tests := []struct {
		name string
		body string
	}{
		{"坏JSON", `{`},
		{"非法帐票种类", `{"reportType":9}`},
		{"非法格式", `{"reportType":0,"format":"pdf"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/export", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGetGuide(t *testing.T) {
	router, _ := setupRouter(t, setupTestData(t))

	w := doRequest(t, router, http.MethodGet, "/api/guide", "")
	var resp struct {
		Accounts []model.AccountGuideEntry `json:"accounts"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Accounts) == 0 {
		t.Fatal("expected account guide entries")
	}
	found := false
	for _, entry := range resp.Accounts {
		if entry.Key == "revenue" && entry.Code == model.AccountRevenue {
			found = true
		}
	}
	if !found {
		t.Error("revenue entry missing")
	}
}

func TestEmptyDataDir(t *testing.T) {
	router, _ := setupRouter(t, filepath.Join(t.TempDir(), "損益計算書"))

	// 空目录下所有查询都应正常返回空/零
	w := doRequest(t, router, http.MethodGet, "/api/kpi", "")
	if w.Code != http.StatusOK {
		t.Errorf("kpi status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/periods", "")
	var periodsResp struct {
		Periods []string `json:"periods"`
	}
	decodeJSON(t, w, &periodsResp)
	if periodsResp.Periods == nil || len(periodsResp.Periods) != 0 {
		t.Errorf("periods = %v", periodsResp.Periods)
	}

	w = doRequest(t, router, http.MethodGet, "/api/status", "")
	var status StatusResponse
	decodeJSON(t, w, &status)
	if status.Initialized {
		t.Error("empty dir should not be initialized")
	}
}
