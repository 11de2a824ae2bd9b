package seed

type eventSeed struct {
	title       string
	slug        string
	price       string
	description string
}

type faqSeed struct {
	question string
	answer   string
}

type categorySeed struct {
	name        string
	slug        string
	description string
	image       string
	events      []eventSeed
	faqs        []faqSeed
}

var categories = []categorySeed{
	{
		name:        "Sea Trials / Herndon",
		slug:        "sea-trials-herndon",
		description: "All sea related events",
		image:       "/uploads/category/sec-02.png",
		events: []eventSeed{{
			title:       "Photographs of Herndon Monument Climb",
			slug:        "photographs-of-herndon-monument-climb",
			price:       "29.95",
			description: "Access to the photographs taken at the Herndon Monument Climb and Sea Trials, with unlimited downloads for personal use.",
		}},
		faqs: []faqSeed{
			{"How will the Sea Trials photographs be organized?", "By companies."},
			{"Will there be photographs of my son or daughter?", "At Herndon only plebes climbing the monument are photographed. At Sea Trials every company is photographed at the Mud Crawl."},
		},
	},
	{
		name:        "Graduations / Commissioning",
		slug:        "graduations-commissioning",
		description: "Graduations celebration events",
		image:       "/uploads/category/sec-03.png",
		events: []eventSeed{{
			title:       "Photographs of Graduations / Commissioning",
			slug:        "photographs-of-graduations-commissioning",
			price:       "59.95",
			description: "Every graduate is photographed during the processional, the hand shake and leaving the stage. Galleries are grouped by company.",
		}},
		faqs: []faqSeed{
			{"Do I have to sign up prior to Graduation Day?", "No, but prices increase after May 15 and photographs are available for thirty days only."},
			{"Are refunds available?", "Sorry, they are not."},
		},
	},
	{
		name:        "Plebe Summer",
		slug:        "plebe-summer",
		description: "Each platoon is photographed at least 15 times. Galleries are identified by date, platoon and evolution.",
		image:       "/uploads/category/sec-04.png",
		events: []eventSeed{
			{
				title:       "Manual Search",
				slug:        "manual-search",
				price:       "269.95",
				description: "Browse your midshipman's platoon galleries and download up to 250 photographs.",
			},
			{
				title:       "Manual Search with Waldo Finder and Waldo News",
				slug:        "manual-search-with-waldo-finder-and-waldo-news",
				price:       "349.95",
				description: "Waldo Finder notifies you when new photographs of your midshipman are posted. Includes Manual Search.",
			},
		},
		faqs: []faqSeed{
			{"What is Plebe Summer?", "The 7-week training period for incoming Naval Academy midshipmen."},
		},
	},
	{
		name:        "Studio Collection",
		slug:        "studio-collection",
		description: "Studio Collection",
		image:       "/uploads/category/sec-05.png",
	},
	{
		name:        "USNA Lucky Bag",
		slug:        "usna-lucky-bag",
		description: "USNA Lucky Bag",
		image:       "/uploads/category/sec-03.png",
	},
}
