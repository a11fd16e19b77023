package resource

type Category string

const (
	CategoryFacility   Category = "facility"
	CategoryEquipment  Category = "equipment"
	CategoryMaterial   Category = "material"
	CategoryVehicle    Category = "vehicle"
	CategoryTechnology Category = "technology"
	CategoryOther      Category = "other"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFacility, CategoryEquipment, CategoryMaterial,
		CategoryVehicle, CategoryTechnology, CategoryOther:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
	StatusOutOfOrder  Status = "out_of_order"
	StatusRetired     Status = "retired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusOutOfOrder, StatusRetired:
		return true
	default:
		return false
	}
}
