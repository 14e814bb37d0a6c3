package aggregator

import (
	"testing"

	"github.com/hatauchi-tech/Fukui-BI/internal/model"
)

func TestCalculateKPI_指定部门(t *testing.T) {
	a := New(testLedger())

	kpi := a.CalculateKPI(intPtr(210), "2025/07")

	if kpi.Revenue != 10000000 {
		t.Errorf("Revenue = %v, want 10000000", kpi.Revenue)
	}
	if kpi.GrossProfit != 3000000 {
		t.Errorf("GrossProfit = %v, want 3000000", kpi.GrossProfit)
	}
	if kpi.GrossMargin != 30.0 {
		t.Errorf("GrossMargin = %v, want 30.0", kpi.GrossMargin)
	}
	if kpi.OpMargin != 25.0 {
		t.Errorf("OpMargin = %v, want 25.0", kpi.OpMargin)
	}
	if kpi.NetIncome != 2000000 {
		t.Errorf("NetIncome = %v, want 2000000", kpi.NetIncome)
	}
}

func TestCalculateKPI_全公司按部门合计(t *testing.T) {
	a := New(testLedger())

	kpi := a.CalculateKPI(nil, "2025/07")

	if kpi.Revenue != 18000000 {
		t.Errorf("Revenue = %v, want 18000000", kpi.Revenue)
	}
	if kpi.GrossProfit != 3000000 {
		t.Errorf("GrossProfit = %v, want 3000000", kpi.GrossProfit)
	}
}

func TestCalculateKPI_同一部门重复科目行只取首行(t *testing.T) {
	ledger := append(testLedger(),
		// 建機部的収入計重复出现，全公司集计不应重复累加
		row(210, "建機部", 0, model.AccountRevenue, "収入計", 5000000, "2025/07"),
	)
	a := New(ledger)

	kpi := a.CalculateKPI(nil, "2025/07")
	if kpi.Revenue != 18000000 {
		t.Errorf("Revenue = %v, want 18000000", kpi.Revenue)
	}
}

func TestCalculateKPI_不存在的条件返回全零(t *testing.T) {
	tests := []struct {
		name     string
		ledger   model.Ledger
		deptCode *int
		period   string
	}{
		{"空数据", model.Ledger{}, nil, ""},
		{"不存在的部门", testLedger(), intPtr(999), "2025/07"},
		{"不存在的年月", testLedger(), nil, "2030/01"},
		{"部门与年月均不存在", testLedger(), intPtr(999), "2030/01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpi := New(tt.ledger).CalculateKPI(tt.deptCode, tt.period)
			if kpi != (model.KPI{}) {
				t.Errorf("expected all-zero KPI, got %+v", kpi)
			}
		})
	}
}

func TestCalculateKPI_収入为零时利益率为零(t *testing.T) {
	ledger := model.Ledger{
		row(210, "建機部", 0, model.AccountGrossProfit, "売上総利益", 500, "2025/07"),
		row(210, "建機部", 0, model.AccountNetIncome, "当期利益", 300, "2025/07"),
	}
	a := New(ledger)

	kpi := a.CalculateKPI(intPtr(210), "2025/07")

	if kpi.Revenue != 0 {
		t.Fatalf("Revenue = %v, want 0", kpi.Revenue)
	}
	if kpi.GrossMargin != 0 || kpi.OpMargin != 0 || kpi.OrdMargin != 0 || kpi.NetMargin != 0 {
		t.Errorf("零収入时利益率应全为 0: %+v", kpi)
	}
}

func TestCalculateKPI_只看损益计算书本体(t *testing.T) {
	ledger := model.Ledger{
		// 製造原価内訳中同编码的行不应混入 KPI
		row(210, "建機部", 1, model.AccountRevenue, "収入計", 7777, "2025/07"),
		row(210, "建機部", 0, model.AccountRevenue, "収入計", 1000, "2025/07"),
	}
	a := New(ledger)

	kpi := a.CalculateKPI(intPtr(210), "2025/07")
	if kpi.Revenue != 1000 {
		t.Errorf("Revenue = %v, want 1000", kpi.Revenue)
	}
}
