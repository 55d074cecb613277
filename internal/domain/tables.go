package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Catalog
	&Category{},
	&Product{},
	// Directory
	&Client{},
	// Orders
	&Prescription{},
	&Order{},
	&OrderItem{},
}
