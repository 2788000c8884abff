package models

import "time"

// CommCode maps the M_COMM_CODE table: tenant-scoped lookup values grouped by CODE_GRP.
type CommCode struct {
	CommCodeNo   int64     `gorm:"column:M_COMM_CODE_NO;primaryKey;autoIncrement"                     json:"mCommCodeNo"`
	CodeGrp      string    `gorm:"column:CODE_GRP;type:varchar(100);not null;index:idx_comm_code_grp" json:"codeGrp"`
	CodeVal      string    `gorm:"column:CODE_VAL;type:varchar(100);not null"                         json:"codeVal"`
	CodeName     string    `gorm:"column:CODE_NAME;type:varchar(100);not null"                        json:"codeName"`
	CodeName2    string    `gorm:"column:CODE_NAME2;type:varchar(100)"                                json:"codeName2,omitempty"`
	CodeName3    string    `gorm:"column:CODE_NAME3;type:varchar(100)"                                json:"codeName3,omitempty"`
	CodeDtl      string    `gorm:"column:CODE_DTL;type:varchar(100)"                                  json:"codeDtl,omitempty"`
	Style        string    `gorm:"column:STYLE;type:varchar(50)"                                      json:"style,omitempty"`
	SortNo       *int      `gorm:"column:SORT_NO"                                                     json:"sortNo,omitempty"`
	CodeDesc     string    `gorm:"column:CODE_DESC;type:varchar(500)"                                 json:"codeDesc,omitempty"`
	UseFlag      string    `gorm:"column:USE_FLAG;type:char(1);default:'1'"                           json:"useFlag"`
	UsiteNo      int64     `gorm:"column:M_USITE_NO;not null;index:idx_comm_code_grp"                 json:"mUsiteNo"`
	RegDate      time.Time `gorm:"column:REG_DATE;autoCreateTime"                                     json:"regDate"`
	UpdDate      time.Time `gorm:"column:UPD_DATE;autoUpdateTime"                                     json:"updDate"`
	RegUser      int64     `gorm:"column:REG_USER;not null"                                           json:"regUser"`
	UpdUser      int64     `gorm:"column:UPD_USER;not null"                                           json:"updUser"`
	LangCode     string    `gorm:"column:LANG_CODE;type:varchar(2)"                                   json:"langCode,omitempty"`
	UpperCodeGrp string    `gorm:"column:UPPER_CODE_GRP;type:varchar(100)"                            json:"upperCodeGrp,omitempty"`
	AttcFile     string    `gorm:"column:ATTC_FILE;type:varchar(30)"                                  json:"attcFile,omitempty"`
}

func (CommCode) TableName() string {
	return "M_COMM_CODE"
}
