package app

// View identifies the screen the presentation layer should render. The
// domain core only routes between them; layout is the views' business.
type View string

const (
	ViewAuth              View = "AUTH"
	ViewHome              View = "HOME"
	ViewSearch            View = "SEARCH"
	ViewMasterclassList   View = "MASTERCLASS_LIST"
	ViewMasterclassDetail View = "MASTERCLASS_DETAIL"
	ViewLibrary           View = "LIBRARY"
	ViewSettings          View = "SETTINGS"
	ViewAdmin             View = "ADMIN"
	ViewSubscription      View = "SUBSCRIPTION"
	ViewReader            View = "READER"
	ViewHelp              View = "HELP"
	ViewContactInfo       View = "CONTACT_INFO"
	ViewBookstore         View = "BOOKSTORE"
	ViewFAQ               View = "FAQ"
)
