package render

import "testing"

func TestOutputPath(t *testing.T) {
	cases := []struct {
		templateID string
		entity     string
		want       string
	}{
		{"hostname", "", "etc/hostname"},
		{"sysctl.conf", "", "etc/sysctl.d/99-netloom.conf"},
		{"interface.network", "eth1", "etc/systemd/network/10-eth1.network"},
		{"interface.link", "eth1", "etc/systemd/network/10-eth1.link"},
		{"routes.network", "", "etc/systemd/network/20-routes.network"},
		{"bridge.netdev", "br0", "etc/systemd/network/05-br0.netdev"},
		{"bridge.network", "br0", "etc/systemd/network/06-br0.network"},
		{"bridge-port.network", "eth2", "etc/systemd/network/07-eth2-bridge.network"},
		{"vlan-parent.network", "eth1", "etc/systemd/network/09-eth1-vlan.network"},
		{"vlan.netdev", "eth1.100", "etc/systemd/network/11-eth1.100.netdev"},
		{"vlan.network", "eth1.100", "etc/systemd/network/11-eth1.100.network"},
		{"tunnel.netdev", "tun0", "etc/systemd/network/25-tun0.netdev"},
		{"tunnel.network", "tun0", "etc/systemd/network/25-tun0.network"},
		{"bird.conf", "", "etc/bird/bird.conf"},
		{"static.conf", "", "etc/bird/conf.d/static.conf"},
		{"ospf.conf", "", "etc/bird/conf.d/ospf.conf"},
		{"rip.conf", "", "etc/bird/conf.d/rip.conf"},
		{"frr.conf", "", "etc/frr/frr.conf"},
		{"daemons", "", "etc/frr/daemons"},
		{"nftables.conf", "", "etc/nftables.conf"},
		{"wg0.conf", "", "etc/wireguard/wg0.conf"},
		{"services.list", "", "services.list"},
		// suffix fallbacks for user-supplied templates
		{"extra.network", "", "etc/systemd/network/extra.network"},
		{"custom.conf", "", "etc/custom.conf"},
	}

	for _, c := range cases {
		got, ok := OutputPath(c.templateID, c.entity)
		if !ok {
			t.Errorf("%v: no mapping", c.templateID)
			continue
		}
		if got != c.want {
			t.Errorf("%v: expected %v, got %v", c.templateID, c.want, got)
		}
	}
}

func TestOutputPathUnknown(t *testing.T) {
	if _, ok := OutputPath("mystery", ""); ok {
		t.Error("unmapped template id without known suffix should fail")
	}
}
