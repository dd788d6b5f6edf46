package service

// Fixed user-facing replies.
const (
	MsgNotWhitelisted    = "請先聯繫管理員註冊，要不然不給你用。"
	MsgDecline           = "我聽不懂你的意思。我只負責樂透彩相關查詢功能"
	MsgTranslationFailed = "翻譯失敗，請稍後再試。"
	MsgNoData            = "目前查詢不到資料"
	MsgWelcome           = "歡迎使用樂透小秘書！"
	MsgStatisticsFailed  = "暫時無法取得統計資料，請稍後再試。"
)

const MsgHelp = "歡迎使用樂透小秘書！\n\n" +
	"以下是可用的指令：\n" +
	"/start - 開始使用樂透小秘書\n" +
	"/statistics - 查看您的使用統計資料\n" +
	"\n請輸入您的樂透相關問題，例如：「台灣樂透開獎號碼」或「樂透中獎機率」等。"
