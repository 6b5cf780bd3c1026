package profile

// Profile 用户资料，保存在 cookie 中（仅前端演示用途）
type Profile struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// WithDefaults 资料补全失败时使用的兜底默认值
func (p Profile) WithDefaults() Profile {
	if p.Name == "" {
		p.Name = "Demo User"
	}
	if p.Phone == "" {
		p.Phone = "(555) 000-0000"
	}
	return p
}
