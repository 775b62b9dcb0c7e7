package loc

type DiagnosticCode int

const (
	ERROR                             DiagnosticCode = 1000
	ERROR_UNREADABLE_SOURCE           DiagnosticCode = 1001
	WARNING                           DiagnosticCode = 2000
	WARNING_UNTERMINATED_HTML_COMMENT DiagnosticCode = 2001
	WARNING_UNCLOSED_HTML_TAG         DiagnosticCode = 2002
	WARNING_UNTERMINATED_CDATA        DiagnosticCode = 2003
	WARNING_UNTERMINATED_SCRIPT       DiagnosticCode = 2004
	WARNING_UNTERMINATED_QUOTED_VALUE DiagnosticCode = 2005
	WARNING_UNDECODABLE_BYTES         DiagnosticCode = 2006
	WARNING_TRUNCATED_TAG             DiagnosticCode = 2007
	INFO                              DiagnosticCode = 3000
	HINT                              DiagnosticCode = 4000
)
