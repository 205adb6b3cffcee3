package catalog

// Word lists the contract generator picks names and briefs from

var contractClients = []string{
	"Local Bakery", "Startup Inc", "Fintech Corp", "MegaBank", "Social Media Giant",
	"AI Research Lab", "Crypto Exchange", "Game Studio", "Government Agency", "Non-Profit",
}

var contractTasks = []string{
	"Fix CSS Layouts", "Build Landing Page", "Optimize Database", "Refactor Legacy Code",
	"Implement Auth Flow", "Design API", "Migrate to Cloud", "Train AI Model", "Audit Security", "Develop Mobile App",
}

var contractBriefs = []string{
	"Needs it done yesterday.", "Offering exposure as payment.", "The last dev quit.",
	"Scalability is key.", "Must be mobile-responsive.", "Strict NDA required.",
	"CEO wants to see results.", "Budget is tight.", "Make it pop.", "Using bleeding edge tech.",
}
