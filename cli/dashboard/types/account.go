package types

import "time"

type User struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone"`
	Readonly       bool       `json:"readonly"`
	Administrator  bool       `json:"administrator"`
	Disabled       bool       `json:"disabled"`
	ExpirationTime *time.Time `json:"expirationTime"`
	DeviceLimit    int        `json:"deviceLimit"`
	UserLimit      int        `json:"userLimit"`
	DeviceReadonly bool       `json:"deviceReadonly"`
	LimitCommands  bool       `json:"limitCommands"`
	FixedEmail     bool       `json:"fixedEmail"`
	PoiLayer       *string    `json:"poiLayer"`
	Attributes     Attributes `json:"attributes"`
}

type ServerInfo struct {
	Version               string     `json:"version"`
	Registration          bool       `json:"registration"`
	EmailEnabled          bool       `json:"emailEnabled"`
	OpenIDEnabled         bool       `json:"openIdEnabled"`
	OpenIDGoogleEnabled   bool       `json:"openIdGoogleEnabled"`
	OpenIDFacebookEnabled bool       `json:"openIdFacebookEnabled"`
	OpenIDAppleEnabled    bool       `json:"openIdAppleEnabled"`
	OpenIDForce           bool       `json:"openIdForce"`
	Announcement          *string    `json:"announcement"`
	Attributes            Attributes `json:"attributes"`
}
