package graphcfg

import "testing"

func TestUpgradeConfigRenamesLegacyGyroFields(t *testing.T) {
	graphs := []Graph{
		{Label: "Gyros", Fields: []Field{
			{Name: "gyroDataRoll"},
			{Name: "gyroData[1]"},
			{Name: "motor[0]"},
		}},
	}

	upgraded, ok := UpgradeConfig(graphs)
	if !ok {
		t.Fatalf("expected ok for a present configuration")
	}
	if upgraded[0].Fields[0].Name != "gyroADCRoll" {
		t.Fatalf("got %s, want gyroADCRoll", upgraded[0].Fields[0].Name)
	}
	if upgraded[0].Fields[1].Name != "gyroADC[1]" {
		t.Fatalf("got %s, want gyroADC[1]", upgraded[0].Fields[1].Name)
	}
	if upgraded[0].Fields[2].Name != "motor[0]" {
		t.Fatalf("unrelated field renamed: %s", upgraded[0].Fields[2].Name)
	}
}

func TestUpgradeConfigIdempotent(t *testing.T) {
	graphs := []Graph{
		{Fields: []Field{{Name: "gyroDataYaw"}, {Name: "gyroADC[0]"}}},
	}

	once, _ := UpgradeConfig(graphs)
	first := fieldNames(once[0])
	twice, _ := UpgradeConfig(once)
	second := fieldNames(twice[0])

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("upgrade not idempotent: %v vs %v", first, second)
		}
	}
	if second[0] != "gyroADCYaw" || second[1] != "gyroADC[0]" {
		t.Fatalf("unexpected names after double upgrade: %v", second)
	}
}

func TestUpgradeConfigLeavesBareStemAlone(t *testing.T) {
	graphs := []Graph{
		{Fields: []Field{{Name: "gyroData"}}},
	}

	upgraded, _ := UpgradeConfig(graphs)
	if upgraded[0].Fields[0].Name != "gyroData" {
		t.Fatalf("suffix-less name renamed: %s", upgraded[0].Fields[0].Name)
	}
}

func TestUpgradeConfigNilSentinel(t *testing.T) {
	graphs, ok := UpgradeConfig(nil)
	if ok || graphs != nil {
		t.Fatalf("nil input must yield the no-configuration sentinel, got (%v, %v)", graphs, ok)
	}

	// An empty configuration is present, just empty.
	graphs, ok = UpgradeConfig([]Graph{})
	if !ok || graphs == nil {
		t.Fatalf("empty input must stay a present configuration, got (%v, %v)", graphs, ok)
	}
}

func TestUpgradedConfigMatchesLogFields(t *testing.T) {
	log := newTestLog()
	graphs, _ := UpgradeConfig([]Graph{
		{Fields: []Field{{Name: "gyroData[0]"}}},
	})

	adapted := AdaptGraphs(log, graphs)
	if len(adapted[0].Fields) != 1 || adapted[0].Fields[0].Name != "gyroADC[0]" {
		t.Fatalf("migrated field did not match the log: %+v", adapted[0].Fields)
	}
}
