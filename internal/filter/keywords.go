package filter

// DefaultIncludeKeywords target entry-level analyst and data science roles.
var DefaultIncludeKeywords = []string{
	"data analyst",
	"business analyst",
	"product analyst",
	"analytics",
	"bi analyst",
	"business intelligence",
	"reporting analyst",
	"insights analyst",
	"data science",
	"data scientist",
	"science",
}

// DefaultExcludeKeywords drop engineering, management and senior roles.
var DefaultExcludeKeywords = []string{
	"software engineer",
	"software development",
	"developer",
	"full stack",
	"frontend",
	"back end",
	"backend",
	"devops",
	"site reliability",
	"sre",
	"platform engineer",
	"ml engineer",
	"machine learning engineer",
	"data engineer",
	"cloud engineer",
	"security engineer",
	"product manager",
	"program manager",
	"director",
	"sr ",
	"senior ",
	"principal",
	"staff",
	"lead",
	"manager",
	"intern",
}
