// Command cli resolves a hostname's DNSLink and prints the redirect plan
// for a request URL, using host state loaded from an optional YAML file.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/linkdata/dnslink"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type config struct {
	PeerCount     *int   `yaml:"peer_count"`
	Policy        string `yaml:"policy"`
	API           string `yaml:"api"`
	Gateway       string `yaml:"gateway"`
	PublicGateway string `yaml:"public_gateway"`
	NodeMode      string `yaml:"node_mode"`
}

func defaultState() dnslink.State {
	api, _ := url.Parse("http://127.0.0.1:5001/")
	gw, _ := url.Parse("http://127.0.0.1:8080/")
	pub, _ := url.Parse("https://ipfs.io/")
	return dnslink.State{
		Policy:            dnslink.PolicyEager,
		APIBase:           api,
		GatewayBase:       gw,
		PublicGatewayBase: pub,
		NodeMode:          dnslink.ModeExternal,
	}
}

func loadState(path string) (state dnslink.State, err error) {
	state = defaultState()
	if path == "" {
		return
	}
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	var cfg config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	if cfg.PeerCount != nil {
		state.PeerCount = *cfg.PeerCount
	}
	if state.Policy, err = dnslink.ParsePolicy(cfg.Policy); err != nil {
		return
	}
	if state.NodeMode, err = dnslink.ParseNodeMode(cfg.NodeMode); err != nil {
		return
	}
	for _, it := range []struct {
		raw  string
		dest **url.URL
	}{
		{cfg.API, &state.APIBase},
		{cfg.Gateway, &state.GatewayBase},
		{cfg.PublicGateway, &state.PublicGatewayBase},
	} {
		if it.raw != "" {
			if *it.dest, err = url.Parse(it.raw); err != nil {
				return
			}
		}
	}
	return
}

func run(cfgPath, rawurl string) error {
	state, err := loadState(cfgPath)
	if err != nil {
		return err
	}
	u, err := url.Parse(rawurl)
	if err != nil {
		return err
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc := dnslink.New(dnslink.StateFunc(func() dnslink.State { return state }), logger)
	if !svc.IsLookupSafeForURL(u) {
		fmt.Println("lookup not safe for", u)
		return nil
	}
	ctx := context.Background()
	value := svc.ResolveAndCache(ctx, u.Hostname())
	fmt.Println("dnslink:", value)
	if r := svc.PlanRedirect(ctx, u, value); r != nil {
		fmt.Println("redirect:", r.URL)
	} else {
		fmt.Println("no redirect")
	}
	return nil
}

func main() {
	cfgPath := flag.String("config", "", "YAML host state file")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cli [-config file] <url>")
		os.Exit(2)
	}
	if err := run(*cfgPath, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
