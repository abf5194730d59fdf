package openapi

import (
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/taxonomy"
)

const (
	profileName       = "Cisco"
	coaPort           = 1700
	tacacsConnectMode = "ON_LEGACY"
)

// networkDevice is the gateway wire shape of a device record. Field
// names match the legacy interface; only the envelope differs.
type networkDevice struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ProfileName    string          `json:"profileName"`
	CoaPort        int             `json:"coaPort"`
	IPList         []deviceIP      `json:"NetworkDeviceIPList"`
	GroupList      []string        `json:"NetworkDeviceGroupList"`
	TACACS         *tacacsSettings `json:"tacacsSettings,omitempty"`
	Authentication *authSettings   `json:"authenticationSettings,omitempty"`
}

type deviceIP struct {
	IPAddress string `json:"ipaddress"`
	Mask      int    `json:"mask"`
}

type tacacsSettings struct {
	SharedSecret       string `json:"sharedSecret"`
	ConnectModeOptions string `json:"connectModeOptions"`
}

type authSettings struct {
	NetworkProtocol    string `json:"networkProtocol,omitempty"`
	RadiusSharedSecret string `json:"radiusSharedSecret,omitempty"`
	EnableKeyWrap      bool   `json:"enableKeyWrap,omitempty"`
}

// networkDeviceGroup is the gateway wire shape of a device group.
type networkDeviceGroup struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// OtherName is the group's root category name.
	OtherName string `json:"othername"`
}

func fromDevice(d directory.Device) networkDevice {
	groups := make([]string, 0, len(d.Groups))
	for _, p := range d.Groups.Sorted() {
		groups = append(groups, p.String())
	}

	nd := networkDevice{
		Name:        d.Name,
		Description: d.Description,
		ProfileName: profileName,
		CoaPort:     coaPort,
		IPList:      []deviceIP{{IPAddress: d.IPAddress, Mask: d.Mask}},
		GroupList:   groups,
	}
	if d.TACACS != nil {
		nd.TACACS = &tacacsSettings{
			SharedSecret:       d.TACACS.SharedSecret,
			ConnectModeOptions: tacacsConnectMode,
		}
	}
	if d.RADIUS != nil {
		nd.Authentication = &authSettings{
			NetworkProtocol:    "RADIUS",
			RadiusSharedSecret: d.RADIUS.SharedSecret,
		}
	}
	return nd
}

// current converts a gateway device record into the engine's
// current-state form. An authenticationSettings block with an empty
// radiusSharedSecret is normalized to unconfigured.
func (nd networkDevice) current() directory.CurrentDevice {
	d := directory.Device{
		Name:        nd.Name,
		Description: nd.Description,
		Groups:      taxonomy.NewSet(),
	}
	if len(nd.IPList) > 0 {
		d.IPAddress = nd.IPList[0].IPAddress
		d.Mask = nd.IPList[0].Mask
	}
	for _, g := range nd.GroupList {
		d.Groups.Add(taxonomy.Path(g))
	}
	if nd.TACACS != nil && nd.TACACS.SharedSecret != "" {
		d.TACACS = &directory.TACACSSettings{SharedSecret: nd.TACACS.SharedSecret}
	}
	if nd.Authentication != nil && nd.Authentication.RadiusSharedSecret != "" {
		d.RADIUS = &directory.RADIUSSettings{SharedSecret: nd.Authentication.RadiusSharedSecret}
	}
	return directory.CurrentDevice{Device: d, ID: nd.ID}
}
