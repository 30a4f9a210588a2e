package semantic

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/smeil-lang/smeilc/internal/loader"
)

// scheduleReport renders a schedule as deterministic text: one line per
// wave, processes in scheduled order, tagged with their ProcessTag so a
// snapshot diff shows exactly what changed when scheduling behavior
// shifts.
func scheduleReport(ctx *Context) string {
	var b strings.Builder
	for i, wave := range ctx.Schedule {
		names := make([]string, len(wave))
		for j, p := range wave {
			names[j] = fmt.Sprintf("%s(%s)", p.Name, p.Tag)
		}
		fmt.Fprintf(&b, "wave %d: %s\n", i, strings.Join(names, ", "))
	}
	return b.String()
}

func TestCompileAdderScheduleSnapshot(t *testing.T) {
	data, err := json.Marshal(adderFixture(nil, nil))
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	mod, err := loader.Decode(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	ctx, diag := Compile(mod, "Adder", nil)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}

	snaps.MatchSnapshot(t, scheduleReport(ctx))
}

func TestCompileChainedAddersScheduleSnapshot(t *testing.T) {
	extraInstances := []map[string]interface{}{
		instanceDecl("s1", "Sum", nameExpr("InBusA"), nameExpr("InBusB"), nameExpr("Mid")),
		instanceDecl("s2", "Sum", nameExpr("Mid"), nameExpr("InBusB"), nameExpr("OutBus")),
	}
	extraNetworkDecls := []map[string]interface{}{
		busDeclRef("Mid", "Word", false),
	}
	fixture := adderFixture(nil, extraNetworkDecls, extraInstances...)

	data, err := json.Marshal(fixture)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	mod, err := loader.Decode(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	ctx, diag := Compile(mod, "Adder", nil)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}

	snaps.MatchSnapshot(t, scheduleReport(ctx))
}
