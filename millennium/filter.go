package millennium

/* orderFilter is the body of PEDIDO_VENDA.Lista_Data
 * The ERP expects every key present; nil pointers serialize as null.
 * Only N_PEDIDO_CLIENTE and VITRINE vary per call
 */
type orderFilter struct {
	ScriptFilial      *string `json:"SCRIPTFILIAL"`
	DataI             string  `json:"DATAI"`
	DataF             string  `json:"DATAF"`
	Tipo              string  `json:"TIPO"`
	Bloqueios         *string `json:"BLOQUEIOS"`
	Cidade            *string `json:"CIDADE"`
	Cliente           *string `json:"CLIENTE"`
	ClienteEntrega    *string `json:"CLIENTE_ENTREGA"`
	CliGrupoLoja      *string `json:"CLI_GRUPO_LOJA"`
	CodPedidoV        string  `json:"COD_PEDIDOV"`
	CodPedidoMktPlace *string `json:"COD_PEDIDO_MKT_PLACE"`
	ColecaoPedido     *string `json:"COLECAO_PEDIDO"`
	ColecaoProduto    *string `json:"COLECAO_PRODUTO"`
	Comanda           *string `json:"COMANDA"`
	Consignacao       *string `json:"CONSIGNACAO"`
	Cor               *string `json:"COR"`
	Efetuado          int     `json:"EFETUADO"`
	EnderecoRetirada  *string `json:"ENDERECO_RETIRADA"`
	EntregaImediata   *string `json:"ENTREGA_IMEDIATA"`
	Estado            *string `json:"ESTADO"`
	Estampa           *string `json:"ESTAMPA"`
	FiltroPro         bool    `json:"FILTROPRO"`
	GrupoLoja         *string `json:"GRUPO_LOJA"`
	GrupoProduto      *string `json:"GRUPO_PRODUTO"`
	IgnoraParam       bool    `json:"IGNORA_PARAM"`
	ListaCasamento    bool    `json:"LISTA_CASAMENTO"`
	NPedidoCliente    string  `json:"N_PEDIDO_CLIENTE"`
	OpcaoData         int     `json:"OPCAO_DATA"`
	Orcamento         *string `json:"ORCAMENTO"`
	Ordem             int     `json:"ORDEM"`
	OrigemPedido      *string `json:"ORIGEM_PEDIDO"`
	PedidoV           *string `json:"PEDIDOV"`
	PontoRetirada     *string `json:"PONTO_RETIRADA"`
	Produto           *string `json:"PRODUTO"`
	ProdutoGrupo      *string `json:"PRODUTO_GRUPO"`
	ProdutoSubgrupo   *string `json:"PRODUTO_SUBGRUPO"`
	Regiao            *string `json:"REGIAO"`
	Representante     *string `json:"REPRESENTANTE"`
	TabelaPreco       *string `json:"TABELA_PRECO"`
	TipoPedido        *string `json:"TIPO_PEDIDO"`
	Vendedor          *string `json:"VENDEDOR"`
	Vitrine           string  `json:"VITRINE"`
}

// newOrderFilter searches every sales order ever placed for one storefront order number
func newOrderFilter(ecommerceNumber, vitrine string) orderFilter {
	return orderFilter{
		DataI:          "1900-01-01T00:00:00.000Z",
		DataF:          "2100-12-31T23:59:59.999Z",
		Tipo:           "AC",
		CodPedidoV:     "",
		Efetuado:       2,
		FiltroPro:      true,
		IgnoraParam:    false,
		ListaCasamento: false,
		NPedidoCliente: ecommerceNumber,
		OpcaoData:      1,
		Ordem:          0,
		Vitrine:        vitrine,
	}
}
