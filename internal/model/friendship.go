package model

import (
	"gorm.io/gorm"
)

// 好友申请状态
// pending 只能转移到 accepted 或 rejected，二者均为终态
const (
	FriendStatusPending  int8 = 0 // 申请中
	FriendStatusAccepted int8 = 1 // 已通过
	FriendStatusRejected int8 = 2 // 已拒绝
)

// Friendship 好友关系模型
// 按方向存储（申请人 → 被申请人），但语义上对称：
// 查询好友列表时需要合并两个方向并排除自己
type Friendship struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:申请id"`
	ApplicantId string `gorm:"column:applicant_id;index;type:char(20);not null;comment:申请人uuid"`
	TargetId    string `gorm:"column:target_id;index;type:char(20);not null;comment:被申请人uuid"`
	Status      int8   `gorm:"column:status;not null;comment:申请状态，0.申请中，1.通过，2.拒绝"`
	Message     string `gorm:"column:message;type:varchar(100);comment:申请附言"`
}

func (Friendship) TableName() string {
	return "friendship"
}
