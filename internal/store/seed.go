package store

import (
	"context"
	"fmt"
	"time"

	"github.com/david/rfp-finder/internal/models"
	"github.com/google/uuid"
)

// SeedRfps returns the demo collection used when no live data has been
// ingested yet. IDs are fixed so reseeding upserts in place.
func SeedRfps(now time.Time) []models.Rfp {
	return []models.Rfp{
		{
			ID:                  uuid.MustParse("a7dbc4d2-d166-4a3a-9882-0c656b3cce7f"),
			Title:               "University Website Redesign & Development",
			Organization:        "State University of Technology",
			Description:         "Seeking experienced Drupal developers to redesign and redevelop the university's main website. Requirements include custom module development, integration with student information systems, accessibility compliance, and responsive design.",
			Technology:          "Drupal",
			BudgetMin:           models.IntPtr(150000),
			BudgetMax:           models.IntPtr(200000),
			Deadline:            now.AddDate(0, 0, 45),
			PostedDate:          now.AddDate(0, 0, -12),
			Location:            "California, USA",
			OrganizationType:    "Education",
			ContactEmail:        "procurement@statetech.edu",
			OrganizationWebsite: "https://www.statetech.edu",
			DocumentURL:         "https://www.statetech.edu/procurement/rfp-website-redesign.pdf",
			IsPriority:          true,
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("fcf0a793-9117-49ea-99fd-a39d9ad766e7"),
			Title:               "E-commerce Platform Development",
			Organization:        "Green Earth Retailers",
			Description:         "WordPress-based e-commerce solution with WooCommerce integration. Need custom theme development, payment gateway integration, inventory management system, and mobile optimization.",
			Technology:          "WordPress",
			BudgetMin:           models.IntPtr(75000),
			BudgetMax:           models.IntPtr(100000),
			Deadline:            now.AddDate(0, 0, 20),
			PostedDate:          now.AddDate(0, 0, -25),
			Location:            "New York, USA",
			OrganizationType:    "Private",
			ContactEmail:        "tech@greenearthretailers.com",
			OrganizationWebsite: "https://www.greenearthretailers.com",
			DocumentURL:         "https://www.greenearthretailers.com/procurement/ecommerce-rfp.pdf",
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("cf973054-4f89-48af-bcc3-f35acf9c8616"),
			Title:               "Customer Portal Web Application",
			Organization:        "TechFlow Solutions Inc.",
			Description:         "React-based customer portal with real-time data visualization, user authentication, and integration with existing APIs. Must include dashboard functionality, reporting tools, and mobile responsiveness.",
			Technology:          "React",
			BudgetMin:           models.IntPtr(200000),
			BudgetMax:           models.IntPtr(300000),
			Deadline:            now.AddDate(0, 0, 30),
			PostedDate:          now.AddDate(0, 0, -8),
			Location:            "Texas, USA",
			OrganizationType:    "Private",
			ContactEmail:        "projects@techflow.com",
			OrganizationWebsite: "https://www.techflow.com",
			DocumentURL:         "https://www.techflow.com/rfp/customer-portal-requirements.pdf",
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("1f1b3a90-7d44-4f3a-9b5c-21f4a0f6f001"),
			Title:               "Healthcare Data Management System",
			Organization:        "Regional Medical Center",
			Description:         "Drupal-based patient data management system with HIPAA compliance, custom workflows, and integration with electronic health records. Requires expertise in healthcare data standards and patient privacy regulations.",
			Technology:          "Drupal",
			BudgetMin:           models.IntPtr(400000),
			BudgetMax:           models.IntPtr(500000),
			Deadline:            now.AddDate(0, 0, 25),
			PostedDate:          now.AddDate(0, 0, -18),
			Location:            "Florida, USA",
			OrganizationType:    "Non-profit",
			ContactEmail:        "it@regionalmedical.org",
			OrganizationWebsite: "https://www.regionalmedical.org",
			DocumentURL:         "https://www.regionalmedical.org/procurement/healthcare-data-system-rfp.pdf",
			IsPriority:          true,
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("1f1b3a90-7d44-4f3a-9b5c-21f4a0f6f002"),
			Title:               "Data Analytics Platform",
			Organization:        "City Planning Department",
			Description:         "Python-based data analytics platform for urban planning insights. Machine learning integration, data visualization, and reporting tools required. Must handle large datasets and provide predictive analytics.",
			Technology:          "Python",
			BudgetMin:           models.IntPtr(120000),
			BudgetMax:           models.IntPtr(180000),
			Deadline:            now.AddDate(0, 0, 40),
			PostedDate:          now.AddDate(0, 0, -5),
			Location:            "Washington, USA",
			OrganizationType:    "Government",
			ContactEmail:        "tech@cityplanning.gov",
			OrganizationWebsite: "https://www.cityplanning.gov",
			DocumentURL:         "https://www.cityplanning.gov/rfp/data-analytics-platform.pdf",
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("1f1b3a90-7d44-4f3a-9b5c-21f4a0f6f003"),
			Title:               "Community Portal Enhancement",
			Organization:        "Metropolitan Library System",
			Description:         "Drupal 10 upgrade and enhancement project for community library portal. Features include event management, digital resource access, user registration system, and multi-location support.",
			Technology:          "Drupal",
			BudgetMin:           models.IntPtr(80000),
			BudgetMax:           models.IntPtr(120000),
			Deadline:            now.AddDate(0, 0, 35),
			PostedDate:          now.AddDate(0, 0, -22),
			Location:            "Illinois, USA",
			OrganizationType:    "Government",
			ContactEmail:        "digital@metrolibraries.org",
			OrganizationWebsite: "https://www.metrolibraries.org",
			DocumentURL:         "https://www.metrolibraries.org/rfp/community-portal-enhancement.pdf",
			IsPriority:          true,
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("1f1b3a90-7d44-4f3a-9b5c-21f4a0f6f004"),
			Title:               "Non-profit Fundraising Platform",
			Organization:        "Global Climate Initiative",
			Description:         "WordPress-based fundraising and donor management platform. Features include online donations, campaign management, volunteer coordination, and impact reporting. Optimized for mobile and social media integration.",
			Technology:          "WordPress",
			BudgetMin:           models.IntPtr(45000),
			BudgetMax:           models.IntPtr(70000),
			Deadline:            now.AddDate(0, 0, 15),
			PostedDate:          now.AddDate(0, 0, -28),
			Location:            "Oregon, USA",
			OrganizationType:    "Non-profit",
			ContactEmail:        "tech@globalclimate.org",
			OrganizationWebsite: "https://www.globalclimate.org",
			DocumentURL:         "https://www.globalclimate.org/rfp/fundraising-platform-requirements.pdf",
			IsActive:            true,
		},
		{
			ID:                  uuid.MustParse("1f1b3a90-7d44-4f3a-9b5c-21f4a0f6f005"),
			Title:               "Enterprise Resource Planning System",
			Organization:        "Manufacturing Solutions Corp",
			Description:         "Angular-based ERP system for manufacturing operations. Includes inventory management, production scheduling, quality control, and reporting modules. Must integrate with existing manufacturing equipment and databases.",
			Technology:          "Angular",
			BudgetMin:           models.IntPtr(350000),
			BudgetMax:           models.IntPtr(450000),
			Deadline:            now.AddDate(0, 0, 60),
			PostedDate:          now.AddDate(0, 0, -15),
			Location:            "Michigan, USA",
			OrganizationType:    "Private",
			ContactEmail:        "erp@mfgsolutions.com",
			OrganizationWebsite: "https://www.mfgsolutions.com",
			DocumentURL:         "https://www.mfgsolutions.com/procurement/erp-system-rfp.pdf",
			IsActive:            true,
		},
	}
}

// Seed loads the demo collection into an empty store. A non-empty store is
// left untouched so live ingested data is never clobbered on restart.
func Seed(ctx context.Context, s Store) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting store: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeds := SeedRfps(time.Now())
	for _, rfp := range seeds {
		if _, err := s.Upsert(ctx, rfp); err != nil {
			return 0, fmt.Errorf("seeding rfp %s: %w", rfp.ID, err)
		}
	}
	return len(seeds), nil
}
