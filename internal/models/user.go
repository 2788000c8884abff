package models

import (
	"database/sql"
	"math"
	"time"
)

// UseFlagActive marks a row as in use (USE_FLAG = '1').
const UseFlagActive = "1"

// AdminAuthNum is the lowest AUTH_NUM granted administrative authority.
const AdminAuthNum = 9

// User maps the M_USER table.
type User struct {
	UserNo       int64  `gorm:"column:M_USER_NO;primaryKey;autoIncrement"             json:"M_USER_NO"`
	UserCode     string `gorm:"column:USER_CODE;type:varchar(50);uniqueIndex;not null" json:"USER_CODE"`
	PasswordHash string `gorm:"column:USER_PASSWORD;type:varchar(100)"                 json:"-"`
	UserName     string `gorm:"column:USER_NAME;type:varchar(100)"                     json:"USER_NAME"`

	HireDate       *time.Time `gorm:"column:HIRE_DATE"       json:"HIRE_DATE,omitempty"`
	RetirementDate *time.Time `gorm:"column:RETIREMENT_DATE" json:"RETIREMENT_DATE,omitempty"`

	TelNo        string `gorm:"column:TEL_NO;type:varchar(20)"        json:"TEL_NO,omitempty"`
	MobileNo     string `gorm:"column:MOBILE_NO;type:varchar(20)"     json:"MOBILE_NO,omitempty"`
	Email        string `gorm:"column:EMAIL;type:varchar(50)"         json:"EMAIL,omitempty"`
	GroupwareKey string `gorm:"column:GROUPWARE_KEY;type:varchar(50)" json:"-"`

	DeptNo       *int64 `gorm:"column:M_DEPT_NO"                      json:"M_DEPT_NO,omitempty"`
	DeptCode     string `gorm:"column:DEPT_CODE;type:varchar(12)"     json:"DEPT_CODE,omitempty"`
	PositionCode string `gorm:"column:POSITION_CODE;type:varchar(20)" json:"POSITION_CODE,omitempty"`
	DutyCode     string `gorm:"column:DUTY_CODE;type:varchar(20)"     json:"DUTY_CODE,omitempty"`

	UseFlag string `gorm:"column:USE_FLAG;type:char(1);index;default:'1'" json:"USE_FLAG"`
	UsiteNo int64  `gorm:"column:M_USITE_NO;not null;index"               json:"M_USITE_NO"`

	// Session length in minutes; zero falls back to the configured default.
	ConnDur           int64      `gorm:"column:CONN_DUR;not null;default:0"    json:"CONN_DUR"`
	MultipleLoginFlag *int64     `gorm:"column:MULTIPLE_LOGIN_FLAG"            json:"MULTIPLE_LOGIN_FLAG,omitempty"`
	StartMenu         *int64     `gorm:"column:START_MENU"                     json:"START_MENU,omitempty"`
	PwUpdDate         *time.Time `gorm:"column:PW_UPD_DATE"                    json:"-"`
	AccessLimitFlag   string     `gorm:"column:ACCESS_LIMIT_FLAG;type:char(1)" json:"ACCESS_LIMIT_FLAG,omitempty"`

	// LoginFailCnt is a NUMBER column; read it through FailureCount.
	LoginFailCnt sql.NullFloat64 `gorm:"column:LOGIN_FAIL_CNT;type:numeric(10,2)" json:"-"`

	UserLang string `gorm:"column:USER_LANG;type:varchar(2)"  json:"USER_LANG,omitempty"`
	UserDuty string `gorm:"column:USERDUTY;type:varchar(200)" json:"USERDUTY,omitempty"`
	UserID   string `gorm:"column:USERID;type:varchar(50)"    json:"USERID,omitempty"`
	AuthNum  *int   `gorm:"column:AUTH_NUM"                   json:"AUTH_NUM,omitempty"`

	RegDate time.Time `gorm:"column:REG_DATE;autoCreateTime" json:"-"`
	UpdDate time.Time `gorm:"column:UPD_DATE;autoUpdateTime" json:"-"`
	RegUser int64     `gorm:"column:REG_USER;not null"       json:"-"`
	UpdUser int64     `gorm:"column:UPD_USER;not null"       json:"-"`
}

// TableName pins the legacy table name.
func (User) TableName() string {
	return "M_USER"
}

// IsActive reports whether USE_FLAG marks the account as in use.
func (u *User) IsActive() bool {
	return u.UseFlag == UseFlagActive
}

// FailureCount returns LOGIN_FAIL_CNT as a non-negative integer.
// Fractional values are truncated toward zero; NULL reads as zero.
func (u *User) FailureCount() int64 {
	if !u.LoginFailCnt.Valid {
		return 0
	}
	v := math.Trunc(u.LoginFailCnt.Float64)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// SetFailureCount stores n in LOGIN_FAIL_CNT.
func (u *User) SetFailureCount(n int64) {
	u.LoginFailCnt = sql.NullFloat64{Float64: float64(n), Valid: true}
}

// IsAdmin returns true if the user's AUTH_NUM carries administrative authority
func (u *User) IsAdmin() bool {
	return u.AuthNum != nil && *u.AuthNum >= AdminAuthNum
}
