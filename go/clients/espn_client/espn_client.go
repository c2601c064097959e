package espn_client

import (
	"fmt"
	"strings"

	"github.com/tbrandt/draftkit/go/clients"
)

type ESPNClient struct {
	*clients.BaseClient
}

// NewESPNClient builds a client for the ESPN fantasy read API. Credentials
// are optional: public leagues need no cookie at all. A bare SWID is
// brace-wrapped, which is how ESPN issues it.
func NewESPNClient(swid, espnS2 string) *ESPNClient {
	client := &ESPNClient{
		BaseClient: clients.NewBaseClient(BaseURL),
	}

	if swid != "" && espnS2 != "" {
		if !strings.HasPrefix(swid, "{") {
			swid = "{" + swid + "}"
		}
		client.SetHeader(CookieHeader, fmt.Sprintf("SWID=%s; espn_s2=%s", swid, espnS2))
	}

	return client
}
