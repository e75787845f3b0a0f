package handler

import (
	"bytes"
	"encoding/json"
	"strings"
)

// flexString accepts a JSON string, number or null, and a form value.  Ids
// arrive as numbers from fetch clients and as strings from HTML forms.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query binding.
func (f *flexString) UnmarshalParam(param string) error {
	*f = flexString(param)
	return nil
}

func (f flexString) String() string { return strings.TrimSpace(string(f)) }

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type logoutReq struct {
	Username string `json:"username" form:"username"`
}

type fileComplaintReq struct {
	Entity      flexString `json:"entity" form:"entity"`
	Description string     `json:"description" form:"description"`
}

type deleteComplaintReq struct {
	ID       flexString `json:"id_complaint" form:"id_complaint"`
	Username string     `json:"username" form:"username"`
}

type updateStatusReq struct {
	ID       flexString `json:"id_complaint" form:"id_complaint"`
	Status   string     `json:"complaint_status" form:"complaint_status"`
	Username string     `json:"username" form:"username"`
}

type addCommentReq struct {
	ID   flexString `json:"id_complaint" form:"id_complaint"`
	Text string     `json:"comment_text" form:"comment_text"`
}

type captchaReq struct {
	Token string `json:"token" form:"token"`
}

// ----- responses -----

type messageResp struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type dataResp struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type sessionFailResp struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	RedirectToLogin bool   `json:"redirectToLogin"`
}

type commentsResp struct {
	Success  bool        `json:"success"`
	Comments interface{} `json:"comments"`
	Message  string      `json:"message,omitempty"`
}

type detailsResp struct {
	Success   bool        `json:"success"`
	Complaint interface{} `json:"complaint"`
	Comments  interface{} `json:"comments"`
	Message   string      `json:"message,omitempty"`
}
