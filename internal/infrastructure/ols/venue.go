package ols

// Site constants for the MIT Recreation (Zesiger Center) instance of the
// booking application. Field names and ids are the site's, not ours.
const (
	DefaultBaseURL = "https://hnd-p-ols.spectrumng.net"

	// The confirmation POST is rejected without a browser User-Agent.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/60.0.3112.90 Safari/537.36"

	siteID                  = 1261
	serviceID               = 4
	serviceName             = "Recreational Squash"
	serviceUniqueIdentifier = "757170ab-4338-4ff6-868d-2fb51cc449f8"
	resourceNameFormat      = "Zesiger Squash Court #%d"

	loginPath        = "/MIT/Login.aspx?AspxAutoDetectCookieSupport=1"
	availabilityPath = "/MIT/Library/OlsService.asmx/GetSchedulerResourceAvailability"
	stagePath        = "/MIT/Library/OlsService.asmx/SetScheduleInformation"
	confirmPath      = "/MIT/Members/Scheduler/AddFamilyMembersScheduler.aspx?showOfflineMessage=true"

	// The forms auth cookie has to exist before login or the server never sets it.
	authCookieName        = ".CSIASPXFORMSAUTH"
	authCookiePlaceholder = "dummy"

	fieldUserName        = "ctl00$pageContentHolder$loginControl$UserName"
	fieldPassword        = "ctl00$pageContentHolder$loginControl$Password"
	fieldLoginButton     = "ctl00$pageContentHolder$loginControl$Login"
	fieldViewState       = "__VIEWSTATE"
	fieldSessionRelation = "ctl00$rnHf"
	fieldScriptManager   = "ctl00$ScriptManager1"
	fieldEventTarget     = "__EVENTTARGET"
	fieldEventArgument   = "__EVENTARGUMENT"
	fieldAsyncPost       = "__ASYNCPOST"

	continueButton = "ctl00$pageContentHolder$btnContinueCart"
	cartPanel      = "ctl00$pageContentHolder$upnlCart"

	idViewState       = "__VIEWSTATE"
	idSessionRelation = "ctl00_rnHf"
	idThankYou        = "ctl00_pageContentHolder_lblThankYou"
)
