package tabular

import "testing"

func TestRepairInventoryText_WellFormedIsUntouched(t *testing.T) {
	text := "Count ID,Item Name,Counted Qty\n" +
		"deadbeef01,Firewood,10\n" +
		"CAFE0123,Lantern,4"
	if got := RepairInventoryText(text); got != text {
		t.Errorf("repair changed well-formed text:\n%q\nwant\n%q", got, text)
	}
}

func TestRepairInventoryText_RejoinsBrokenRow(t *testing.T) {
	text := "Count ID,Item Name,Counted Qty\n" +
		"deadbeef01,Firewood\nBundle,10\n" +
		"cafe012345,Lantern,4"
	want := "Count ID,Item Name,Counted Qty\n" +
		"deadbeef01,Firewood Bundle,10\n" +
		"cafe012345,Lantern,4"
	if got := RepairInventoryText(text); got != want {
		t.Errorf("RepairInventoryText() =\n%q\nwant\n%q", got, want)
	}
}

func TestRepairInventoryText_ShortHexPrefixIsJoined(t *testing.T) {
	// Seven hex characters is not a UID, so the break is spurious.
	text := "deadbeef01,Firewood,10\nabc1234,leftover"
	want := "deadbeef01,Firewood,10 abc1234,leftover"
	if got := RepairInventoryText(text); got != want {
		t.Errorf("RepairInventoryText() = %q, want %q", got, want)
	}
}

func TestRepairInventoryText_CRLFRemnantDropped(t *testing.T) {
	text := "deadbeef01,Firewood\r\nBundle,10"
	want := "deadbeef01,Firewood Bundle,10"
	if got := RepairInventoryText(text); got != want {
		t.Errorf("RepairInventoryText() = %q, want %q", got, want)
	}
}

func TestRepairInventoryText_HeaderNeverJoinedAway(t *testing.T) {
	// The first line is kept whether or not it carries a UID.
	text := "Count ID,Item Name\ndeadbeef01,Firewood"
	if got := RepairInventoryText(text); got != text {
		t.Errorf("RepairInventoryText() = %q, want %q", got, text)
	}
}
