package valid

//karst:superclass
type Base struct {
	ID int `karst:"key,generated"`
}

//karst:entity table=people
type Person struct {
	Base
	Name    string `karst:"column=full_name"`
	Email   string
	Active  bool
	Address *Address `karst:"one_to_one"`
	Tags    []string
	secret  string
}

//persist:entity
type Address struct {
	ID   int    `persist:"key,generated"`
	City string `persist:"column=city_name"`
}

//karst:entity
type Account interface {
	//karst:attr key generated
	GetID() int
	GetOwner() string
	IsSuspended() bool
	Close() error
}
