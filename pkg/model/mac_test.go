package model

import (
	"strings"
	"testing"
)

func TestGenerateMAC(t *testing.T) {
	mac := GenerateMAC("lab-R1-eth1")
	if mac != "72:53:C1:9B:31:C7" {
		t.Errorf("mac mismatch %v", mac)
	}

	if again := GenerateMAC("lab-R1-eth1"); again != mac {
		t.Errorf("mac not deterministic: %v vs %v", mac, again)
	}

	if other := GenerateMAC("lab-R2-eth1"); other == mac {
		t.Errorf("different seeds must not collide: %v", other)
	}
}

func TestGenerateMACFormat(t *testing.T) {
	mac := GenerateMAC("any-seed")
	octets := strings.Split(mac, ":")
	if len(octets) != 6 {
		t.Fatalf("expected 6 octets, got %v", mac)
	}
	for _, o := range octets {
		if len(o) != 2 || strings.ToUpper(o) != o {
			t.Errorf("octet %v not uppercase hex pair", o)
		}
	}

	// locally administered unicast: bit 1 set, bit 0 clear
	var first int
	for i, c := range octets[0] {
		v := strings.IndexByte("0123456789ABCDEF", byte(c))
		if v < 0 {
			t.Fatalf("octet %v not hex", octets[0])
		}
		if i == 0 {
			first = v << 4
		} else {
			first |= v
		}
	}
	if first&0x02 == 0 {
		t.Errorf("locally administered bit not set in %v", mac)
	}
	if first&0x01 != 0 {
		t.Errorf("multicast bit set in %v", mac)
	}
}
