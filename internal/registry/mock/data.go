package mock

import "carpick/internal/models"

var manufacturers = []models.Manufacturer{
	{ID: 955, Name: "TESLA, INC.", CommonName: "Tesla", Country: "UNITED STATES (USA)",
		VehicleTypes: []models.VehicleType{{IsPrimary: true, Name: "Passenger Car"}}},
	{ID: 976, Name: "FORD MOTOR COMPANY", CommonName: "Ford", Country: "UNITED STATES (USA)",
		VehicleTypes: []models.VehicleType{{IsPrimary: true, Name: "Truck"}, {Name: "Passenger Car"}}},
	{ID: 987, Name: "HONDA MOTOR CO., LTD", CommonName: "Honda", Country: "JAPAN",
		VehicleTypes: []models.VehicleType{{IsPrimary: true, Name: "Passenger Car"}, {Name: "Motorcycle"}}},
	{ID: 1002, Name: "bayerische motoren werke ag", CommonName: "BMW", Country: "GERMANY",
		VehicleTypes: []models.VehicleType{{IsPrimary: true, Name: "Passenger Car"}}},
	{ID: 1003, Name: "Toyota Motor Corporation", CommonName: "Toyota", Country: "JAPAN",
		VehicleTypes: []models.VehicleType{{IsPrimary: true, Name: "Passenger Car"}}},
}

var makes = map[int][]models.Make{
	955: {
		{ID: 441, Name: "TESLA", Manufacturer: "TESLA, INC."},
	},
	976: {
		{ID: 460, Name: "FORD", Manufacturer: "FORD MOTOR COMPANY"},
		{ID: 464, Name: "LINCOLN", Manufacturer: "FORD MOTOR COMPANY"},
		{ID: 473, Name: "MERCURY", Manufacturer: "FORD MOTOR COMPANY"},
	},
	987: {
		{ID: 474, Name: "HONDA", Manufacturer: "HONDA MOTOR CO., LTD"},
		{ID: 475, Name: "ACURA", Manufacturer: "HONDA MOTOR CO., LTD"},
	},
	1002: {
		{ID: 452, Name: "BMW", Manufacturer: "bayerische motoren werke ag"},
		{ID: 584, Name: "MINI", Manufacturer: "bayerische motoren werke ag"},
	},
	1003: {
		{ID: 448, Name: "TOYOTA", Manufacturer: "Toyota Motor Corporation"},
		{ID: 515, Name: "LEXUS", Manufacturer: "Toyota Motor Corporation"},
	},
}

var vehicleModels = map[int][]models.Model{
	441: {
		{MakeID: 441, MakeName: "TESLA", ID: 1685, Name: "Model S"},
		{MakeID: 441, MakeName: "TESLA", ID: 10199, Name: "Model X"},
		{MakeID: 441, MakeName: "TESLA", ID: 17834, Name: "Model 3"},
		{MakeID: 441, MakeName: "TESLA", ID: 27587, Name: "Model Y"},
		{MakeID: 441, MakeName: "TESLA", ID: 1771, Name: "Roadster"},
	},
	460: {
		{MakeID: 460, MakeName: "FORD", ID: 1781, Name: "Focus"},
		{MakeID: 460, MakeName: "FORD", ID: 1801, Name: "F-150"},
		{MakeID: 460, MakeName: "FORD", ID: 1788, Name: "Mustang"},
		{MakeID: 460, MakeName: "FORD", ID: 1794, Name: "Fiesta"},
		{MakeID: 460, MakeName: "FORD", ID: 1789, Name: "Explorer"},
	},
	464: {
		{MakeID: 464, MakeName: "LINCOLN", ID: 2037, Name: "Navigator"},
		{MakeID: 464, MakeName: "LINCOLN", ID: 2034, Name: "MKZ"},
	},
	473: {
		{MakeID: 473, MakeName: "MERCURY", ID: 2125, Name: "Grand Marquis"},
	},
	474: {
		{MakeID: 474, MakeName: "HONDA", ID: 1861, Name: "Accord"},
		{MakeID: 474, MakeName: "HONDA", ID: 1863, Name: "Civic"},
		{MakeID: 474, MakeName: "HONDA", ID: 1865, Name: "CR-V"},
	},
	475: {
		{MakeID: 475, MakeName: "ACURA", ID: 1872, Name: "MDX"},
		{MakeID: 475, MakeName: "ACURA", ID: 1873, Name: "RDX"},
	},
	452: {
		{MakeID: 452, MakeName: "BMW", ID: 1719, Name: "X5"},
		{MakeID: 452, MakeName: "BMW", ID: 1720, Name: "i3"},
		{MakeID: 452, MakeName: "BMW", ID: 1728, Name: "M3"},
	},
	584: {
		{MakeID: 584, MakeName: "MINI", ID: 2101, Name: "Cooper"},
	},
	448: {
		{MakeID: 448, MakeName: "TOYOTA", ID: 2208, Name: "Corolla"},
		{MakeID: 448, MakeName: "TOYOTA", ID: 2469, Name: "Camry"},
		{MakeID: 448, MakeName: "TOYOTA", ID: 2205, Name: "Prius"},
	},
	515: {
		{MakeID: 515, MakeName: "LEXUS", ID: 2072, Name: "RX"},
	},
}
