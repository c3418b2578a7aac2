package tui

import "novabot/internal/session"

type feature struct {
	title  string
	blurb  string
	points []string
}

type pageContent struct {
	heading  string
	intro    string
	features []feature
}

var pageContents = map[session.Page]pageContent{
	session.PageHome: {
		heading: "Banking Reimagined",
		intro:   "Experience the future of banking with NovaBank's AI-powered solutions.",
		features: []feature{
			{"Smart Banking", "Banking powered by artificial intelligence that adapts to your financial habits.",
				[]string{"AI-Powered Insights", "Personalized Recommendations", "Automated Savings"}},
			{"Secure Transactions", "State-of-the-art encryption and multi-factor authentication.",
				[]string{"Biometric Authentication", "Real-time Fraud Detection", "End-to-End Encryption"}},
			{"24/7 Support", "Our AI assistant and support team are available around the clock.",
				[]string{"AI Chatbot Assistant", "Live Video Banking", "Dedicated Advisors"}},
		},
	},
	session.PageAccounts: {
		heading: "Banking Accounts",
		features: []feature{
			{"NovaCheck Premium", "Our flagship checking account with AI-powered financial insights.",
				[]string{"No monthly fees", "Free ATM withdrawals worldwide", "AI-powered spending insights", "Cashback on everyday purchases"}},
			{"NovaGrow Savings", "High-yield savings with AI-optimized interest rates.",
				[]string{"3.5% APY", "No minimum balance", "Automated savings goals", "Smart round-up feature"}},
			{"NovaBiz Account", "Powerful tools to manage your company finances.",
				[]string{"Free business transactions", "Integrated invoicing", "Employee expense cards", "Business financial insights"}},
		},
	},
	session.PageLoans: {
		heading: "Loan Products",
		features: []feature{
			{"Personal Loans", "Flexible personal loans with competitive rates and quick approval.",
				[]string{"Borrow up to $50,000", "Rates from 4.99% APR", "Terms from 12-60 months", "No prepayment penalties"}},
			{"Auto Loans", "Drive away in your dream car with competitive auto financing.",
				[]string{"New and used vehicles", "Rates from 3.49% APR", "Up to 84-month terms", "Quick online approval"}},
			{"Home Mortgages", "Find your dream home with flexible mortgage options.",
				[]string{"Fixed and adjustable rates", "First-time homebuyer programs", "Refinancing options", "Digital application process"}},
			{"Business Loans", "Fuel your business growth with flexible financing.",
				[]string{"Working capital loans", "Equipment financing", "Commercial real estate", "SBA loan options"}},
		},
	},
	session.PageInvestments: {
		heading: "Investment Solutions",
		features: []feature{
			{"NovaRetire IRA", "Tax-advantaged retirement accounts.",
				[]string{"Traditional and Roth IRAs", "AI-powered retirement planning", "Automatic contributions", "Low-fee investment options"}},
			{"NovaTrade", "Invest in stocks, ETFs, and more on an intuitive platform.",
				[]string{"Commission-free trades", "Fractional shares", "Advanced research tools", "AI-powered investment suggestions"}},
			{"NovaWealth", "Comprehensive wealth management with personalized guidance.",
				[]string{"Dedicated wealth advisor", "Custom investment strategies", "Tax optimization", "Estate planning"}},
		},
	},
	session.PageServices: {
		heading: "Banking Services",
		features: []feature{
			{"Online & Mobile Banking", "Manage your finances anytime, anywhere.",
				[]string{"24/7 account access", "Mobile check deposit", "Bill pay & transfers", "Financial insights dashboard"}},
			{"International Services", "Global banking for travelers and international customers.",
				[]string{"Multi-currency accounts", "International wire transfers", "No foreign transaction fees", "Global ATM access"}},
			{"Insurance Products", "Protect what matters most.",
				[]string{"Life insurance", "Home & auto insurance", "Health insurance", "Business insurance"}},
			{"Financial Planning", "AI-powered financial planning tools.",
				[]string{"Retirement planning", "College savings", "Budget optimization", "Goal-based planning"}},
		},
	},
	session.PageAbout: {
		heading: "About NovaBank",
		intro: "NovaBank was founded in 2020 to make banking simple, transparent and personalized. " +
			"As a fully digital bank we pass the savings of having no branches on as better rates and lower fees.",
		features: []feature{
			{"Our Mission", "To empower people to achieve financial wellness through AI-driven insights and innovative banking.", nil},
			{"Our Vision", "To become the world's leading AI-powered financial institution.", nil},
			{"NovaBot AI Assistant", "Open the chat panel with ctrl+t and ask NovaBot about accounts, loans, cards and more.", nil},
		},
	},
}
