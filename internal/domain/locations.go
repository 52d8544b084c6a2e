package domain

// Locations is the standard 30-location Spyfall deck with the role pools
// from the rulebook.
var Locations = []Location{
	{Name: "Airplane", Roles: []string{"Pilot", "Flight Attendant", "Passenger", "Air Marshal", "Mechanic", "Tourist", "Businessman"}},
	{Name: "Amusement Park", Roles: []string{"Ride Operator", "Parent", "Food Vendor", "Teenager", "Janitor", "Security Guard", "Mascot"}},
	{Name: "Bank", Roles: []string{"Teller", "Security Guard", "Manager", "Customer", "Robber", "Consultant", "Armored Car Driver"}},
	{Name: "Beach", Roles: []string{"Lifeguard", "Surfer", "Photographer", "Tourist", "Ice Cream Vendor", "Kite Surfer", "Beach Volleyball Player"}},
	{Name: "Carnival", Roles: []string{"Ring Toss Operator", "Visitor", "Fire Eater", "Fortune Teller", "Bouncer", "Candy Seller", "Clown"}},
	{Name: "Casino", Roles: []string{"Dealer", "Gambler", "Security", "Cocktail Waitress", "Pit Boss", "Card Counter", "Slot Machine Addict"}},
	{Name: "Circus Tent", Roles: []string{"Acrobat", "Animal Trainer", "Magician", "Fire Eater", "Clown", "Juggler", "Ringmaster"}},
	{Name: "Corporate Party", Roles: []string{"CEO", "Manager", "Employee", "Secretary", "Security", "Bartender", "Caterer"}},
	{Name: "Crusader Army", Roles: []string{"Knight", "Archer", "Priest", "Peasant", "Squire", "Cook", "Prisoner"}},
	{Name: "Day Spa", Roles: []string{"Masseuse", "Customer", "Dermatologist", "Beautician", "Receptionist", "Aromatherapist", "Manicurist"}},
	{Name: "Embassy", Roles: []string{"Ambassador", "Security Officer", "Tourist", "Refugee", "Diplomat", "Government Official", "Secretary"}},
	{Name: "Hospital", Roles: []string{"Doctor", "Nurse", "Patient", "Surgeon", "Anesthesiologist", "Intern", "Therapist"}},
	{Name: "Hotel", Roles: []string{"Guest", "Bellhop", "Manager", "Housekeeper", "Bartender", "Doorman", "Concierge"}},
	{Name: "Military Base", Roles: []string{"Soldier", "Medic", "Engineer", "Sniper", "Officer", "Tank Operator", "Radioman"}},
	{Name: "Movie Studio", Roles: []string{"Director", "Actor", "Cameraman", "Producer", "Sound Engineer", "Stuntman", "Make-up Artist"}},
	{Name: "Nightclub", Roles: []string{"DJ", "Bouncer", "Dancer", "Bartender", "VIP", "Party Girl", "Waiter"}},
	{Name: "Ocean Liner", Roles: []string{"Captain", "Bartender", "Musician", "Wealthy Passenger", "Poor Passenger", "Waiter", "Lifeguard"}},
	{Name: "Passenger Train", Roles: []string{"Mechanic", "Border Patrol", "Passenger", "Restaurant Chef", "Engineer", "Stoker", "Conductor"}},
	{Name: "Pirate Ship", Roles: []string{"Captain", "Mate", "Cabin Boy", "Gunner", "Cook", "Prisoner", "Sailor"}},
	{Name: "Police Station", Roles: []string{"Detective", "Lawyer", "Journalist", "Criminalist", "Archivist", "Patrol Officer", "Criminal"}},
	{Name: "Polar Station", Roles: []string{"Medic", "Expedition Leader", "Biologist", "Radioman", "Hydrologist", "Meteorologist", "Geologist"}},
	{Name: "Restaurant", Roles: []string{"Musician", "Customer", "Bouncer", "Hostess", "Head Chef", "Food Critic", "Waiter"}},
	{Name: "School", Roles: []string{"Gym Teacher", "Student", "Principal", "Security Guard", "Janitor", "Lunch Lady", "Maintenance Man"}},
	{Name: "Service Station", Roles: []string{"Manager", "Tire Specialist", "Biker", "Car Owner", "Car Wash Operator", "Electrician", "Auto Mechanic"}},
	{Name: "Space Station", Roles: []string{"Engineer", "Alien", "Space Tourist", "Pilot", "Commander", "Scientist", "Doctor"}},
	{Name: "Submarine", Roles: []string{"Cook", "Commander", "Sonar Technician", "Electronics Specialist", "Sailor", "Radioman", "Navigator"}},
	{Name: "Supermarket", Roles: []string{"Customer", "Cashier", "Butcher", "Janitor", "Security Guard", "Food Sample Demonstrator", "Shelf Stocker"}},
	{Name: "Theater", Roles: []string{"Coat Check Lady", "Prompter", "Cashier", "Director", "Actor", "Crewman", "Audience Member"}},
	{Name: "University", Roles: []string{"Graduate Student", "Professor", "Dean", "Psychologist", "Maintenance Man", "Student", "Janitor"}},
	{Name: "Zoo", Roles: []string{"Zookeeper", "Visitor", "Photographer", "Child", "Veterinarian", "Tour Guide", "Security Guard"}},
}
