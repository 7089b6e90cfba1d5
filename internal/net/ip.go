package net

import (
	"log"
	"net"
)

// GetOutgoingIP picks the address peers on the LAN should use to reach the
// relay. It asks the routing table first and falls back to the interface
// list, preferring private IPv4 addresses.
func GetOutgoingIP() (string, error) {
	if ip := routedIP(); ip != nil {
		return ip.String(), nil
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	if ip := pickLANAddr(addrs); ip != nil {
		return ip.String(), nil
	}
	log.Println("[SYNC] no LAN address found, share link only works on this machine")
	return "127.0.0.1", nil
}

// routedIP is the source address of the default route. No packet is sent.
func routedIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return nil
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && !addr.IP.IsLoopback() {
		return addr.IP
	}
	return nil
}

func pickLANAddr(addrs []net.Addr) net.IP {
	var fallback net.IP
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		if ipnet.IP.IsPrivate() {
			return ipnet.IP
		}
		if fallback == nil {
			fallback = ipnet.IP
		}
	}
	return fallback
}
