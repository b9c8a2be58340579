// Package sampledata generates the report sample preview and exports it as
// CSV or XLSX.
package sampledata

// Columns is the fixed column order of the sample report, grouped by
// attribute category.
var Columns = []string{
	// Identity & Contact
	"First Name", "Last Name", "Full Name", "Email Address", "Phone Number",
	"Mobile Phone", "Work Phone", "Street Address", "City", "State",
	"ZIP Code", "Country", "IP Address", "Device ID", "Cookie ID",
	"Social Security Number", "LinkedIn Profile", "Facebook Profile", "Twitter Handle", "Website URL",

	// Demographics
	"Age", "Gender", "Date of Birth", "Marital Status", "Number of Children",
	"Household Size", "Ethnicity", "Language", "Education Level", "School Name",
	"Graduation Year", "Political Affiliation", "Veteran Status", "Pet Owner", "Health Insurance",

	// Financial & Wealth
	"Income Range", "Annual Income", "Net Worth", "Credit Score", "Credit Card Type",
	"Bank Name", "Investment Account", "Insurance Policies", "Tax Filing Status", "Charitable Giving",
	"Payment Methods", "Subscription Services", "Shopping Habits", "Brand Preferences", "Loyalty Programs",

	// Home & Property
	"Home Owner Status", "Property Value", "Mortgage Amount", "Square Footage", "Number of Bedrooms",
	"Number of Bathrooms", "Year Built", "Home Condition", "Home Style", "Property Tax",

	// Professional
	"Job Title", "Company Name", "Industry", "Company Size", "Department",
	"Management Level", "Years of Experience", "Employment Status", "Salary Range", "Skills",

	// Lifestyle
	"Hobbies", "Interests", "Travel Frequency", "Dining Preferences", "Cuisine Preferences",
	"Entertainment Preferences", "Volunteer Work", "Religious Participation",

	// Technology
	"Device Ownership", "Smartphone Brand", "Operating System", "Browser", "Smart Home Devices",

	// Marketing
	"Purchase Intent", "Brand Affinity",
}

// RowCount is the number of generated sample rows.
const RowCount = 50
