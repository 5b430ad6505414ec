package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type ReportID string

func NewReportID(id string) ReportID { return ReportID(id) }
func (r ReportID) String() string    { return string(r) }
func (r ReportID) IsEmpty() bool     { return string(r) == "" }

type QuotaID string

func NewQuotaID(id string) QuotaID { return QuotaID(id) }
func (r QuotaID) String() string   { return string(r) }
func (r QuotaID) IsEmpty() bool    { return string(r) == "" }

type ComplaintID string

func NewComplaintID(id string) ComplaintID { return ComplaintID(id) }
func (r ComplaintID) String() string       { return string(r) }
func (r ComplaintID) IsEmpty() bool        { return string(r) == "" }

type ConversationID string

func NewConversationID(id string) ConversationID { return ConversationID(id) }
func (r ConversationID) String() string          { return string(r) }
func (r ConversationID) IsEmpty() bool           { return string(r) == "" }

type MessageID string

func NewMessageID(id string) MessageID { return MessageID(id) }
func (r MessageID) String() string     { return string(r) }
func (r MessageID) IsEmpty() bool      { return string(r) == "" }

type InterviewID string

func NewInterviewID(id string) InterviewID { return InterviewID(id) }
func (r InterviewID) String() string       { return string(r) }
func (r InterviewID) IsEmpty() bool        { return string(r) == "" }

type CourseID string

func NewCourseID(id string) CourseID { return CourseID(id) }
func (r CourseID) String() string    { return string(r) }
func (r CourseID) IsEmpty() bool     { return string(r) == "" }

type LessonID string

func NewLessonID(id string) LessonID { return LessonID(id) }
func (r LessonID) String() string    { return string(r) }
func (r LessonID) IsEmpty() bool     { return string(r) == "" }

type EnrollmentID string

func NewEnrollmentID(id string) EnrollmentID { return EnrollmentID(id) }
func (r EnrollmentID) String() string        { return string(r) }
func (r EnrollmentID) IsEmpty() bool         { return string(r) == "" }

type ResourceID string

func NewResourceID(id string) ResourceID { return ResourceID(id) }
func (r ResourceID) String() string      { return string(r) }
func (r ResourceID) IsEmpty() bool       { return string(r) == "" }

type CategoryID string

func NewCategoryID(id string) CategoryID { return CategoryID(id) }
func (r CategoryID) String() string      { return string(r) }
func (r CategoryID) IsEmpty() bool       { return string(r) == "" }

type BookmarkID string

func NewBookmarkID(id string) BookmarkID { return BookmarkID(id) }
func (r BookmarkID) String() string      { return string(r) }
func (r BookmarkID) IsEmpty() bool       { return string(r) == "" }
