package sampledata

import (
	"fmt"
	"strings"

	"github.com/sells-group/match-test/internal/masking"
	"github.com/sells-group/match-test/internal/model"
)

var (
	firstNames    = []string{"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Jessica", "William", "Ashley"}
	lastNames     = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	cities        = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose"}
	states        = []string{"NY", "CA", "IL", "TX", "AZ", "PA", "TX", "CA", "TX", "CA"}
	genders       = []string{"Male", "Female", "Other"}
	maritalStatus = []string{"Single", "Married", "Divorced", "Widowed"}
	industries    = []string{"Technology", "Finance", "Healthcare", "Education", "Retail", "Manufacturing", "Real Estate", "Consulting"}
	jobTitles     = []string{"Software Engineer", "Marketing Manager", "Sales Representative", "Product Manager", "Data Analyst", "Designer", "Consultant", "Director"}
	highMediumLow = []string{"High", "Medium", "Low"}
	cyclePicks    = map[string][]string{
		"Ethnicity":                 {"White", "Hispanic", "Black", "Asian", "Other"},
		"Language":                  {"English", "Spanish", "Chinese", "French"},
		"Education Level":           {"High School", "Bachelor", "Master", "PhD"},
		"Political Affiliation":     {"Democrat", "Republican", "Independent"},
		"Health Insurance":          {"Yes", "No"},
		"Income Range":              {"$30k-$50k", "$50k-$75k", "$75k-$100k", "$100k-$150k", "$150k+"},
		"Credit Card Type":          {"Visa", "Mastercard", "American Express"},
		"Bank Name":                 {"Chase", "Bank of America", "Wells Fargo", "Citibank"},
		"Tax Filing Status":         {"Single", "Married Filing Jointly", "Head of Household"},
		"Payment Methods":           {"Credit Card", "Debit Card", "Cash", "Digital Wallet"},
		"Shopping Habits":           {"Online", "In-Store", "Both"},
		"Brand Preferences":         {"Brand A", "Brand B", "Brand C"},
		"Home Condition":            {"Excellent", "Good", "Fair", "Poor"},
		"Home Style":                {"Modern", "Traditional", "Contemporary"},
		"Company Size":              {"Small", "Medium", "Large"},
		"Department":                {"Engineering", "Sales", "Marketing", "Operations"},
		"Management Level":          {"Individual Contributor", "Manager", "Director", "VP"},
		"Employment Status":         {"Full-Time", "Part-Time", "Contract"},
		"Salary Range":              {"$50k-$75k", "$75k-$100k", "$100k-$150k", "$150k+"},
		"Skills":                    {"JavaScript", "Python", "SQL", "React"},
		"Hobbies":                   {"Reading", "Gaming", "Sports", "Travel"},
		"Interests":                 {"Technology", "Sports", "Music", "Art"},
		"Travel Frequency":          {"Monthly", "Quarterly", "Yearly", "Rarely"},
		"Dining Preferences":        {"Fine Dining", "Casual", "Fast Food"},
		"Cuisine Preferences":       {"Italian", "Mexican", "Asian", "American"},
		"Entertainment Preferences": {"Movies", "Concerts", "Sports", "Theater"},
		"Religious Participation":   {"Regular", "Occasional", "Rare", "None"},
		"Device Ownership":          {"Smartphone", "Tablet", "Laptop", "Desktop"},
		"Smartphone Brand":          {"iPhone", "Samsung", "Google", "Other"},
		"Operating System":          {"iOS", "Android", "Windows", "macOS"},
		"Browser":                   {"Chrome", "Safari", "Firefox", "Edge"},
		"Purchase Intent":           highMediumLow,
		"Brand Affinity":            highMediumLow,
	}
)

// Generate builds the deterministic sample rows. Every call returns the same
// data in a fresh slice.
func Generate() []model.SampleDataRow {
	rows := make([]model.SampleDataRow, 0, RowCount)
	for i := 0; i < RowCount; i++ {
		rows = append(rows, generateRow(i))
	}
	return rows
}

func generateRow(i int) model.SampleDataRow {
	first := firstNames[i%len(firstNames)]
	last := lastNames[i%len(lastNames)]
	lf, ll := strings.ToLower(first), strings.ToLower(last)
	phone := fmt.Sprintf("555-%04d", (1000+i)%10000)

	row := model.SampleDataRow{
		"First Name":             first,
		"Last Name":              last,
		"Full Name":              first + " " + last,
		"Email Address":          lf + "." + ll + "@example.com",
		"Phone Number":           phone,
		"Mobile Phone":           phone,
		"Work Phone":             fmt.Sprintf("555-%04d", (2000+i)%10000),
		"Street Address":         fmt.Sprintf("%d Main Street", 100+i),
		"City":                   cities[i%len(cities)],
		"State":                  states[i%len(states)],
		"ZIP Code":               fmt.Sprintf("%d", 10000+i),
		"Country":                "United States",
		"IP Address":             fmt.Sprintf("192.168.%d.%d", i/10, i%255),
		"Device ID":              fmt.Sprintf("DEVICE%06d", 1000+i),
		"Cookie ID":              fmt.Sprintf("COOKIE%d", i),
		"Social Security Number": fmt.Sprintf("***-**-%04d", (1000+i)%10000),
		"LinkedIn Profile":       "linkedin.com/in/" + lf + ll,
		"Facebook Profile":       "facebook.com/" + lf + "." + ll,
		"Twitter Handle":         "@" + lf + last[:1],
		"Website URL":            "www." + lf + ll + ".com",

		"Age":                25 + i%45,
		"Gender":             genders[i%len(genders)],
		"Date of Birth":      fmt.Sprintf("%d-%02d-%02d", 1980+i%40, i%12+1, i%28+1),
		"Marital Status":     maritalStatus[i%len(maritalStatus)],
		"Number of Children": i % 4,
		"Household Size":     1 + i%5,
		"School Name":        fmt.Sprintf("University %d", i%10),
		"Graduation Year":    2000 + i%20,
		"Veteran Status":     yesNo(i%10 == 0),
		"Pet Owner":          yesNo(i%3 == 0),

		"Annual Income":         40000 + i*2000,
		"Net Worth":             50000 + i*5000,
		"Credit Score":          600 + i%300,
		"Investment Account":    yesNo(i%3 == 0),
		"Insurance Policies":    yesNo(i%2 == 0),
		"Charitable Giving":     yesNo(i%4 == 0),
		"Subscription Services": yesNo(i%2 == 0),
		"Loyalty Programs":      yesNo(i%3 == 0),

		"Property Value":      200000 + i*10000,
		"Mortgage Amount":     mortgage(i),
		"Square Footage":      1000 + i*50,
		"Number of Bedrooms":  1 + i%4,
		"Number of Bathrooms": 1 + i%3,
		"Year Built":          1980 + i%40,
		"Property Tax":        2000 + i*100,

		"Job Title":           jobTitles[i%len(jobTitles)],
		"Company Name":        fmt.Sprintf("Company %d", i%20),
		"Industry":            industries[i%len(industries)],
		"Years of Experience": 1 + i%20,

		"Volunteer Work":     yesNo(i%5 == 0),
		"Smart Home Devices": yesNo(i%3 == 0),
	}

	if i%2 == 0 {
		row["Home Owner Status"] = "Owner"
	} else {
		row["Home Owner Status"] = "Renter"
	}
	for col, picks := range cyclePicks {
		row[col] = picks[i%len(picks)]
	}
	return row
}

func mortgage(i int) int {
	if i%2 == 0 {
		return 150000 + i*5000
	}
	return 0
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Preview returns the rows as ordered string cells, masked with the display
// rules when masked is set.
func Preview(rows []model.SampleDataRow, columns []string, masked bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			v := row[col]
			if masked {
				cells[j] = masking.Value(v, col)
			} else if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out = append(out, cells)
	}
	return out
}
