package domain

// Company is the public face of an employer User as shown next to its jobs.
type Company struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	CompanyName        string `json:"companyName,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`
	CompanyLogo        string `json:"companyLogo,omitempty"`
	Avatar             string `json:"avatar,omitempty"`
}

func (u User) Company() Company {
	return Company{
		ID:                 u.ID,
		Name:               u.Name,
		CompanyName:        u.CompanyName,
		CompanyDescription: u.CompanyDescription,
		CompanyLogo:        u.CompanyLogo,
		Avatar:             u.Avatar,
	}
}
